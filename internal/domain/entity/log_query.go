package entity

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultLogPage  = 1
	DefaultLogLimit = 10
	MaxLogLimit     = 100
)

// LogQuery selects one page of logs
type LogQuery struct {
	Page   int
	Limit  int
	Title  string
	Author string
	Tags   []string
}

// Normalize applies the default page and limit and caps the limit
func (q LogQuery) Normalize() LogQuery {
	if q.Page <= 0 {
		q.Page = DefaultLogPage
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLogLimit
	}
	if q.Limit > MaxLogLimit {
		q.Limit = MaxLogLimit
	}
	q.Title = strings.TrimSpace(q.Title)
	q.Author = strings.TrimSpace(q.Author)
	return q
}

// Values renders the query the way the logs endpoint expects it
func (q LogQuery) Values() url.Values {
	v := url.Values{}
	v.Set("page[offset]", strconv.Itoa((q.Page-1)*q.Limit))
	v.Set("page[limit]", strconv.Itoa(q.Limit))
	v.Set("sort[id]", "desc")
	if q.Title != "" {
		v.Set("filter[title]", q.Title)
	}
	if q.Author != "" {
		v.Set("filter[author]", q.Author)
	}
	if len(q.Tags) > 0 {
		v.Set("filter[tags][operation]", "and")
		v.Set("filter[tags][values]", strings.Join(q.Tags, ","))
	}
	return v
}
