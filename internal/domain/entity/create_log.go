package entity

import (
	"strings"

	"go.uber.org/multierr"
)

// CreateLog is the body sent to create a log, optionally as the reply to another one
type CreateLog struct {
	Title        string   `json:"title"`
	Text         string   `json:"text"`
	ParentLogID  *int64   `json:"parentLogId,omitempty"`
	RunNumbers   string   `json:"runNumbers,omitempty"`   // comma separated
	Environments string   `json:"environments,omitempty"` // comma separated
	LhcFills     string   `json:"lhcFills,omitempty"`     // comma separated
	Tags         []string `json:"tags,omitempty"`
}

// Validate reports the members the API requires but that are missing
func (c *CreateLog) Validate() error {
	verr := &ValidationError{}
	if strings.TrimSpace(c.Title) == "" {
		verr.add("title", "is required")
	}
	if strings.TrimSpace(c.Text) == "" {
		verr.add("text", "is required")
	}
	if c.ParentLogID != nil && *c.ParentLogID <= 0 {
		verr.add("parentLogId", "must be greater than 0")
	}
	return verr.errOrNil()
}

// ToMultipart writes the log as form fields. Empty optional members are skipped.
func (c *CreateLog) ToMultipart(form *MultipartForm, prefix string) error {
	prefix = normalizePrefix(prefix)
	var errs error
	add := func(name string, v any) {
		content, err := toHTTPContent(prefix+name, v)
		if err != nil {
			errs = multierr.Append(errs, &FieldError{Field: prefix + name, Err: err})
			return
		}
		form.Add(content)
	}

	add("title", c.Title)
	add("text", c.Text)
	if c.ParentLogID != nil {
		add("parentLogId", *c.ParentLogID)
	}
	if c.RunNumbers != "" {
		add("runNumbers", c.RunNumbers)
	}
	if c.Environments != "" {
		add("environments", c.Environments)
	}
	if c.LhcFills != "" {
		add("lhcFills", c.LhcFills)
	}
	if len(c.Tags) > 0 {
		add("tags", c.Tags)
	}
	return errs
}

// FromMultipart reads the members written by ToMultipart, or submitted by an HTML form
func (c *CreateLog) FromMultipart(form *MultipartForm, prefix string) error {
	prefix = normalizePrefix(prefix)
	var (
		errs        error
		parentLogID Optional[int64]
		tags        Optional[[]string]
	)
	read := func(name string, dst *string) {
		content, ok := form.GetContent(prefix + name)
		if !ok {
			return
		}
		if err := fromHTTPContent(content, dst); err != nil {
			errs = multierr.Append(errs, &FieldError{Field: prefix + name, Err: err})
		}
	}

	read("title", &c.Title)
	read("text", &c.Text)
	read("runNumbers", &c.RunNumbers)
	read("environments", &c.Environments)
	read("lhcFills", &c.LhcFills)

	errs = multierr.Append(errs, readPart(form, prefix+"parentLogId", &parentLogID))
	if id, ok := parentLogID.Lookup(); ok {
		c.ParentLogID = &id
	}

	if content, ok := form.GetContent(prefix + "tags"); ok && !strings.HasPrefix(content.ContentType, contentTypeJSON) {
		// plain form field: comma separated
		c.Tags = splitList(string(content.Data))
	} else {
		errs = multierr.Append(errs, readPart(form, prefix+"tags", &tags))
		if v, ok := tags.Lookup(); ok {
			c.Tags = v
		}
	}
	return errs
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
