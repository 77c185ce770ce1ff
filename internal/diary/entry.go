package diary

import (
	"strings"
	"time"
)

// Entry is a dated note. The storage service keeps one per computation,
// with the expression as heading and the result as contents.
type Entry struct {
	ID       int64     `json:"id"`
	Heading  string    `json:"heading"`
	Contents string    `json:"contents"`
	Date     time.Time `json:"date"`
}

func Create(heading, contents string) Entry {
	return Entry{Heading: heading, Contents: contents, Date: time.Now()}
}

// Contains reports whether the heading contains keyword.
func (e Entry) Contains(keyword string) bool {
	return strings.Contains(e.Heading, keyword)
}

func (e Entry) After(date time.Time) bool {
	return e.Date.After(date)
}

func (e Entry) Before(date time.Time) bool {
	return e.Date.Before(date)
}

// Filter keeps the entries matching keyword and lying strictly between
// after and before. Empty keyword and zero times match everything.
func Filter(entries []Entry, keyword string, after, before time.Time) []Entry {
	res := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if keyword != "" && !e.Contains(keyword) {
			continue
		}
		if !after.IsZero() && !e.After(after) {
			continue
		}
		if !before.IsZero() && !e.Before(before) {
			continue
		}
		res = append(res, e)
	}
	return res
}
