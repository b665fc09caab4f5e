package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/xyz-asif/trackback/internal/models"
)

const timeLayout = "2006-01-02 15:04"

func kindLabel(k models.Kind) string {
	if k == models.KindFound {
		return "Found"
	}
	return "Lost"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func printItem(w io.Writer, it models.Item) {
	fmt.Fprintf(w, "[%s] %s\n", kindLabel(it.Kind), it.Name)
	fmt.Fprintf(w, "    at %s, reported by %s on %s\n", orDash(it.Location), it.Reporter, it.CreatedAt.Local().Format(timeLayout))
	if it.Description != "" {
		fmt.Fprintf(w, "    %s\n", it.Description)
	}
	if it.Contact != "" {
		fmt.Fprintf(w, "    contact: %s\n", it.Contact)
	}
	switch {
	case it.ImageURL != "":
		fmt.Fprintf(w, "    photo: %s\n", it.ImageURL)
	case it.ImageData != "":
		fmt.Fprintln(w, "    photo attached")
	}
}

func printItems(w io.Writer, items []models.Item, empty string) {
	if len(items) == 0 {
		fmt.Fprintln(w, empty)
		return
	}
	for _, it := range items {
		printItem(w, it)
	}
}

func printHistory(w io.Writer, entries []models.HistoryEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No reports yet.")
		return
	}
	for _, h := range entries {
		fmt.Fprintf(w, "%s  %-5s %s (%s)\n", h.When.Local().Format(timeLayout), kindLabel(h.Type), h.Item.Name, orDash(h.Item.Location))
	}
}

func formatAge(now, t time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return t.Local().Format("2006-01-02")
	}
}
