package repository

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bookkeeping-gateway/internal/config"
	"bookkeeping-gateway/internal/domain/entity"
	"bookkeeping-gateway/internal/infrastructure/redis"
)

type stubClient struct {
	gets       int
	lastPath   string
	lastQuery  url.Values
	lastBody   interface{}
	lastForm   *entity.MultipartForm
	getErr     error
	listResult string
	logResult  string
}

func (c *stubClient) Get(_ context.Context, path string, query url.Values, result interface{}) error {
	c.gets++
	c.lastPath = path
	c.lastQuery = query
	if c.getErr != nil {
		return c.getErr
	}
	body := c.listResult
	if _, ok := result.(*entity.LogResponse); ok {
		body = c.logResult
	}
	return json.Unmarshal([]byte(body), result)
}

func (c *stubClient) Post(_ context.Context, path string, body interface{}, result interface{}) error {
	c.lastPath = path
	c.lastBody = body
	return json.Unmarshal([]byte(c.logResult), result)
}

func (c *stubClient) PostMultipart(_ context.Context, path string, form *entity.MultipartForm, result interface{}) error {
	c.lastPath = path
	c.lastForm = form
	return json.Unmarshal([]byte(c.logResult), result)
}

func newLogRepo(t *testing.T, client *stubClient, cacheEnabled bool) (*logRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc := redis.New(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), zap.NewNop())
	cfg := &config.Config{Cache: config.CacheConfig{Enabled: cacheEnabled, TTL: time.Minute}}
	return NewLogRepository(cfg, client, rc, zap.NewNop()).(*logRepository), mr
}

const listBody = `{"data":[{"id":2,"title":"b","text":"y"},{"id":1,"title":"a","text":"x"}],"meta":{"page":{"pageCount":1,"totalCount":2}}}`

func TestListLogsCaches(t *testing.T) {
	client := &stubClient{listResult: listBody}
	repo, mr := newLogRepo(t, client, true)
	ctx := context.Background()
	query := entity.LogQuery{Page: 1, Limit: 10}

	first, err := repo.ListLogs(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, 1, client.gets)
	assert.Equal(t, "/logs", client.lastPath)
	assert.Equal(t, "10", client.lastQuery.Get("page[limit]"))
	assert.True(t, mr.Exists(cacheKey(query)))

	second, err := repo.ListLogs(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, 1, client.gets)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, second.GetMeta().Page.TotalCount)

	mr.FastForward(2 * time.Minute)
	_, err = repo.ListLogs(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, 2, client.gets)
}

func TestListLogsKeepsAbsentMetaThroughCache(t *testing.T) {
	client := &stubClient{listResult: `{"data":[]}`}
	repo, _ := newLogRepo(t, client, true)
	ctx := context.Background()

	_, err := repo.ListLogs(ctx, entity.LogQuery{Page: 1, Limit: 5})
	require.NoError(t, err)
	cached, err := repo.ListLogs(ctx, entity.LogQuery{Page: 1, Limit: 5})
	require.NoError(t, err)

	assert.Equal(t, 1, client.gets)
	assert.True(t, cached.DataIsSet())
	assert.False(t, cached.MetaIsSet())
}

func TestListLogsIgnoresBrokenCacheEntry(t *testing.T) {
	client := &stubClient{listResult: listBody}
	repo, mr := newLogRepo(t, client, true)
	query := entity.LogQuery{Page: 1, Limit: 10}
	require.NoError(t, mr.Set(cacheKey(query), "{broken"))

	resp, err := repo.ListLogs(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, 1, client.gets)
	assert.Len(t, resp.GetData(), 2)
}

func TestListLogsCacheDisabled(t *testing.T) {
	client := &stubClient{listResult: listBody}
	repo, mr := newLogRepo(t, client, false)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := repo.ListLogs(ctx, entity.LogQuery{Page: 1, Limit: 10})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, client.gets)
	assert.Empty(t, mr.Keys())
}

func TestListLogsError(t *testing.T) {
	boom := errors.New("boom")
	client := &stubClient{getErr: boom}
	repo, mr := newLogRepo(t, client, true)

	_, err := repo.ListLogs(context.Background(), entity.LogQuery{Page: 1, Limit: 10})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, mr.Keys())
}

func TestGetLog(t *testing.T) {
	client := &stubClient{logResult: `{"data":{"id":42,"title":"t","text":"x"}}`}
	repo, _ := newLogRepo(t, client, true)

	resp, err := repo.GetLog(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "/logs/42", client.lastPath)
	assert.Equal(t, int64(42), resp.GetData().ID)
}

func TestCreateLogJSONInvalidatesCache(t *testing.T) {
	client := &stubClient{listResult: listBody, logResult: `{"data":{"id":3,"title":"c","text":"z"}}`}
	repo, mr := newLogRepo(t, client, true)
	ctx := context.Background()

	_, err := repo.ListLogs(ctx, entity.LogQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, mr.Keys(), 1)

	req := &entity.CreateLog{Title: "c", Text: "z"}
	resp, err := repo.CreateLog(ctx, req, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.GetData().ID)
	assert.Same(t, req, client.lastBody)
	assert.Nil(t, client.lastForm)
	assert.Empty(t, mr.Keys())
}

func TestCreateLogWithAttachments(t *testing.T) {
	client := &stubClient{logResult: `{"data":{"id":4,"title":"c","text":"z"}}`}
	repo, _ := newLogRepo(t, client, true)

	files := []entity.FileUpload{
		{Filename: "a.png", ContentType: "image/png", Content: []byte{1}},
		{Filename: "b.txt", ContentType: "text/plain", Content: []byte("b")},
	}
	_, err := repo.CreateLog(context.Background(), &entity.CreateLog{Title: "c", Text: "z", RunNumbers: "1,2"}, files)
	require.NoError(t, err)

	require.NotNil(t, client.lastForm)
	title, ok := client.lastForm.GetContent("title")
	require.True(t, ok)
	assert.Equal(t, "c", string(title.Data))
	assert.True(t, client.lastForm.HasContent("runNumbers"))

	parts := client.lastForm.GetContents("attachments")
	require.Len(t, parts, 2)
	assert.Equal(t, "a.png", parts[0].FileName)
	assert.Equal(t, "b.txt", parts[1].FileName)
}
