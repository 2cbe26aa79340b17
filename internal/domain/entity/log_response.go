package entity

import "fmt"

// LogResponse is the envelope returned when a single log is fetched or created
type LogResponse struct {
	data Optional[Log]
}

func (r *LogResponse) GetData() Log { return r.data.Get() }
func (r *LogResponse) SetData(log Log) { r.data.Set(log) }
func (r *LogResponse) DataIsSet() bool { return r.data.IsSet() }
func (r *LogResponse) UnsetData() { r.data.Unset() }

func (r *LogResponse) Validate() error {
	log, ok := r.data.Lookup()
	if !ok {
		return nil
	}
	verr := &ValidationError{}
	if err := log.Validate(); err != nil {
		verr.merge(fieldData, err)
	}
	return verr.errOrNil()
}

func (r LogResponse) ToJSON() (Document, error) {
	doc := make(Document, 1)
	if err := encodeField(doc, fieldData, r.data); err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *LogResponse) FromJSON(doc Document) error {
	return decodeField(doc, fieldData, &r.data)
}

func (r LogResponse) MarshalJSON() ([]byte, error) {
	doc, err := r.ToJSON()
	if err != nil {
		return nil, err
	}
	return codec.Marshal(doc)
}

func (r *LogResponse) UnmarshalJSON(b []byte) error {
	doc, err := decodeDocument(b)
	if err != nil {
		return fmt.Errorf("failed to decode log response: %w", err)
	}
	return r.FromJSON(doc)
}

func (r LogResponse) ToMultipart(form *MultipartForm, prefix string) error {
	return writePart(form, normalizePrefix(prefix)+fieldData, r.data)
}

func (r *LogResponse) FromMultipart(form *MultipartForm, prefix string) error {
	return readPart(form, normalizePrefix(prefix)+fieldData, &r.data)
}
