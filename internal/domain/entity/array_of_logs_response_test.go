package entity

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func sampleLogs() []Log {
	parent := int64(1)
	return []Log{
		{
			ID:        1,
			Title:     "Beam dump",
			Text:      "Beam dumped at 10:42",
			Author:    &User{ID: 7, ExternalID: 1001, Name: "Jane Shifter"},
			CreatedAt: 1700000000000,
			Origin:    LogOriginHuman,
			Subtype:   LogSubtypeRun,
			Tags:      []Tag{{ID: 3, Text: "FLP"}},
			Runs:      []LogRun{{ID: 11, RunNumber: 520000}},
		},
		{
			ID:          2,
			Title:       "Re: Beam dump",
			Text:        "Acknowledged",
			ParentLogID: &parent,
			RootLogID:   &parent,
			Origin:      LogOriginProcess,
			Subtype:     LogSubtypeComment,
			Attachments: []Attachment{{ID: 5, FileName: "plot.png", Size: 2048, MimeType: "image/png", LogID: 2}},
		},
	}
}

func sampleMeta() ArrayOfLogsResponseMeta {
	return ArrayOfLogsResponseMeta{Page: PageMeta{PageCount: 4, TotalCount: 37}}
}

func TestArrayOfLogsResponseZeroValue(t *testing.T) {
	var r ArrayOfLogsResponse

	assert.False(t, r.DataIsSet())
	assert.False(t, r.MetaIsSet())
	assert.Empty(t, r.GetData())
	assert.Equal(t, ArrayOfLogsResponseMeta{}, r.GetMeta())

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(out))
}

func TestArrayOfLogsResponseSetUnset(t *testing.T) {
	var r ArrayOfLogsResponse
	logs := sampleLogs()

	r.SetData(logs)
	assert.True(t, r.DataIsSet())
	assert.Equal(t, logs, r.GetData())

	r.UnsetData()
	assert.False(t, r.DataIsSet())
	// value retained, only presence cleared
	assert.Equal(t, logs, r.GetData())

	r.SetMeta(sampleMeta())
	assert.True(t, r.MetaIsSet())
	r.UnsetMeta()
	assert.False(t, r.MetaIsSet())

	doc, err := r.ToJSON()
	require.NoError(t, err)
	assert.Empty(t, doc)
}

func TestArrayOfLogsResponseToJSONOmitsUnsetFields(t *testing.T) {
	var r ArrayOfLogsResponse
	logs := sampleLogs()
	r.SetData(logs)

	doc, err := r.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, doc, "data")
	assert.NotContains(t, doc, "meta")
	assert.False(t, r.MetaIsSet())

	expected, err := json.Marshal(map[string]interface{}{"data": logs})
	require.NoError(t, err)
	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, string(expected), string(out))
}

func TestArrayOfLogsResponseEmptyDataStaysPresent(t *testing.T) {
	var r ArrayOfLogsResponse
	r.SetData(nil)

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[]}`, string(out))

	var back ArrayOfLogsResponse
	require.NoError(t, json.Unmarshal(out, &back))
	assert.True(t, back.DataIsSet())
	assert.Empty(t, back.GetData())
}

func TestArrayOfLogsResponseJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		withData bool
		withMeta bool
	}{
		{name: "none"},
		{name: "data only", withData: true},
		{name: "meta only", withMeta: true},
		{name: "both", withData: true, withMeta: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var in ArrayOfLogsResponse
			if tc.withData {
				in.SetData(sampleLogs())
			}
			if tc.withMeta {
				in.SetMeta(sampleMeta())
			}

			out, err := json.Marshal(in)
			require.NoError(t, err)

			var back ArrayOfLogsResponse
			require.NoError(t, json.Unmarshal(out, &back))

			assert.Equal(t, in.DataIsSet(), back.DataIsSet())
			assert.Equal(t, in.MetaIsSet(), back.MetaIsSet())
			assert.Equal(t, in, back)
		})
	}
}

func TestArrayOfLogsResponseFromJSON(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectData  bool
		expectMeta  bool
		expectError bool
	}{
		{
			name:  "empty object",
			input: `{}`,
		},
		{
			name:       "null data with meta",
			input:      `{"data": null, "meta": {"page": {"pageCount": 1, "totalCount": 3}}}`,
			expectMeta: true,
		},
		{
			name:  "both null",
			input: `{"data": null, "meta": null}`,
		},
		{
			name:       "unknown keys ignored",
			input:      `{"data": [{"id": 9, "title": "t", "text": "x"}], "links": {"next": "/api/logs?page=2"}, "version": 2}`,
			expectData: true,
		},
		{
			name:        "data of wrong type",
			input:       `{"data": {"id": 1}, "meta": {"page": {"pageCount": 1}}}`,
			expectMeta:  true,
			expectError: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var r ArrayOfLogsResponse
			err := json.Unmarshal([]byte(tc.input), &r)
			if tc.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.expectData, r.DataIsSet())
			assert.Equal(t, tc.expectMeta, r.MetaIsSet())
		})
	}
}

func TestArrayOfLogsResponseFromJSONReportsEveryField(t *testing.T) {
	var r ArrayOfLogsResponse
	err := json.Unmarshal([]byte(`{"data": "nope", "meta": []}`), &r)
	require.Error(t, err)

	errs := multierr.Errors(err)
	require.Len(t, errs, 2)

	var fields []string
	for _, e := range errs {
		var fe *FieldError
		require.True(t, errors.As(e, &fe))
		fields = append(fields, fe.Field)
	}
	assert.Equal(t, []string{"data", "meta"}, fields)
	assert.False(t, r.DataIsSet())
	assert.False(t, r.MetaIsSet())
}

func TestArrayOfLogsResponseRejectsNonObject(t *testing.T) {
	var r ArrayOfLogsResponse
	err := json.Unmarshal([]byte(`[1, 2]`), &r)
	assert.Error(t, err)
}

func TestArrayOfLogsResponseMultipartRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		keys   []string
	}{
		{name: "top level", prefix: "", keys: []string{"data", "meta"}},
		{name: "prefix without separator", prefix: "response", keys: []string{"response.data", "response.meta"}},
		{name: "prefix with separator", prefix: "outer.response.", keys: []string{"outer.response.data", "outer.response.meta"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var in ArrayOfLogsResponse
			in.SetData(sampleLogs())
			in.SetMeta(sampleMeta())

			form := NewMultipartForm()
			require.NoError(t, in.ToMultipart(form, tc.prefix))
			for _, key := range tc.keys {
				assert.True(t, form.HasContent(key), key)
			}

			var back ArrayOfLogsResponse
			require.NoError(t, back.FromMultipart(form, tc.prefix))
			assert.Equal(t, in, back)
		})
	}
}

func TestArrayOfLogsResponseMultipartSkipsUnset(t *testing.T) {
	var in ArrayOfLogsResponse
	in.SetMeta(sampleMeta())

	form := NewMultipartForm()
	require.NoError(t, in.ToMultipart(form, ""))
	assert.False(t, form.HasContent("data"))
	assert.Len(t, form.Parts(), 1)

	var back ArrayOfLogsResponse
	require.NoError(t, back.FromMultipart(form, ""))
	assert.False(t, back.DataIsSet())
	assert.True(t, back.MetaIsSet())
	assert.Equal(t, sampleMeta(), back.GetMeta())
}

func TestArrayOfLogsResponseValidate(t *testing.T) {
	var r ArrayOfLogsResponse
	assert.NoError(t, r.Validate())

	r.SetData(sampleLogs())
	assert.NoError(t, r.Validate())

	logs := sampleLogs()
	logs[1].Subtype = "gossip"
	logs[1].Title = " "
	r.SetData(logs)

	err := r.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidModel))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []ValidationIssue{
		{Field: "data[1].subtype", Reason: "must be one of: run, subsystem, announcement, intervention, comment"},
		{Field: "data[1].title", Reason: "is required"},
	}, verr.Issues)

	r.UnsetData()
	assert.NoError(t, r.Validate())
}

func TestArrayOfLogsResponseNullMetaFromUpstream(t *testing.T) {
	var r ArrayOfLogsResponse
	require.NoError(t, json.Unmarshal([]byte(`{"data": [{"id": 4, "title": "t", "text": "x"}], "meta": null}`), &r))
	assert.True(t, r.DataIsSet())
	assert.False(t, r.MetaIsSet())
	assert.Len(t, r.GetData(), 1)
}

func TestArrayOfLogsResponseMultipartEmptyDataStaysPresent(t *testing.T) {
	var in ArrayOfLogsResponse
	in.SetData(nil)

	form := NewMultipartForm()
	require.NoError(t, in.ToMultipart(form, "logs"))
	part, ok := form.GetContent("logs.data")
	require.True(t, ok)
	assert.Equal(t, "[]", string(part.Data))

	var back ArrayOfLogsResponse
	require.NoError(t, back.FromMultipart(form, "logs"))
	assert.True(t, back.DataIsSet())
	assert.Empty(t, back.GetData())
}

func TestArrayOfLogsResponseMultipartNullPartIsAbsent(t *testing.T) {
	form := NewMultipartForm()
	form.Add(HTTPContent{Name: "data", ContentType: contentTypeJSON, Data: []byte("null")})
	form.Add(HTTPContent{Name: "meta", ContentType: contentTypeJSON, Data: []byte(`{"page":{"pageCount":1,"totalCount":0}}`)})

	var r ArrayOfLogsResponse
	require.NoError(t, r.FromMultipart(form, ""))
	assert.False(t, r.DataIsSet())
	assert.True(t, r.MetaIsSet())
}
