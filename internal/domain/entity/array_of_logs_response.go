package entity

import (
	"fmt"

	"go.uber.org/multierr"
)

const (
	fieldData = "data"
	fieldMeta = "meta"
)

// ArrayOfLogsResponse is the envelope returned by the logs listing endpoint.
// Both fields are optional and tracked independently.
type ArrayOfLogsResponse struct {
	data Optional[[]Log]
	meta Optional[ArrayOfLogsResponseMeta]
}

// ArrayOfLogsResponseMeta carries pagination information
type ArrayOfLogsResponseMeta struct {
	Page PageMeta `json:"page"`
}

type PageMeta struct {
	PageCount  int `json:"pageCount"`
	TotalCount int `json:"totalCount"`
}

func (r *ArrayOfLogsResponse) GetData() []Log {
	return r.data.Get()
}

func (r *ArrayOfLogsResponse) SetData(logs []Log) {
	r.data.Set(logs)
}

func (r *ArrayOfLogsResponse) DataIsSet() bool {
	return r.data.IsSet()
}

func (r *ArrayOfLogsResponse) UnsetData() {
	r.data.Unset()
}

func (r *ArrayOfLogsResponse) GetMeta() ArrayOfLogsResponseMeta {
	return r.meta.Get()
}

func (r *ArrayOfLogsResponse) SetMeta(meta ArrayOfLogsResponseMeta) {
	r.meta.Set(meta)
}

func (r *ArrayOfLogsResponse) MetaIsSet() bool {
	return r.meta.IsSet()
}

func (r *ArrayOfLogsResponse) UnsetMeta() {
	r.meta.Unset()
}

// Validate checks every log in data. Absent fields are valid.
func (r *ArrayOfLogsResponse) Validate() error {
	logs, ok := r.data.Lookup()
	if !ok {
		return nil
	}
	verr := &ValidationError{}
	for i, log := range logs {
		if err := log.Validate(); err != nil {
			verr.merge(fmt.Sprintf("data[%d]", i), err)
		}
	}
	return verr.errOrNil()
}

// presentData returns data with a present nil slice replaced by an empty one,
// so present but empty stays distinguishable from null on the wire
func (r ArrayOfLogsResponse) presentData() Optional[[]Log] {
	if logs, ok := r.data.Lookup(); ok && logs == nil {
		return Some([]Log{})
	}
	return r.data
}

// ToJSON returns the object holding only the fields that are set
func (r ArrayOfLogsResponse) ToJSON() (Document, error) {
	doc := make(Document, 2)

	err := multierr.Combine(
		encodeField(doc, fieldData, r.presentData()),
		encodeField(doc, fieldMeta, r.meta),
	)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// FromJSON applies every recognised, non-null member of doc. Unknown members
// are ignored. Fields that fail to decode are left untouched and reported as
// *FieldError values combined into the returned error.
func (r *ArrayOfLogsResponse) FromJSON(doc Document) error {
	return multierr.Combine(
		decodeField(doc, fieldData, &r.data),
		decodeField(doc, fieldMeta, &r.meta),
	)
}

func (r ArrayOfLogsResponse) MarshalJSON() ([]byte, error) {
	doc, err := r.ToJSON()
	if err != nil {
		return nil, err
	}
	return codec.Marshal(doc)
}

func (r *ArrayOfLogsResponse) UnmarshalJSON(b []byte) error {
	doc, err := decodeDocument(b)
	if err != nil {
		return fmt.Errorf("failed to decode logs response: %w", err)
	}
	return r.FromJSON(doc)
}

// ToMultipart adds one part per set field, named prefix + field
func (r ArrayOfLogsResponse) ToMultipart(form *MultipartForm, prefix string) error {
	prefix = normalizePrefix(prefix)
	return multierr.Combine(
		writePart(form, prefix+fieldData, r.presentData()),
		writePart(form, prefix+fieldMeta, r.meta),
	)
}

func (r *ArrayOfLogsResponse) FromMultipart(form *MultipartForm, prefix string) error {
	prefix = normalizePrefix(prefix)
	return multierr.Combine(
		readPart(form, prefix+fieldData, &r.data),
		readPart(form, prefix+fieldMeta, &r.meta),
	)
}
