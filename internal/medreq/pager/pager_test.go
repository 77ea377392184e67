package pager

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/medreq/internal/model"
)

// fakeFetcher 生成 last 页数据并记录请求的页码
type fakeFetcher struct {
	last  int
	calls []int
	err   error
}

func (f *fakeFetcher) fetch(_ context.Context, page int) (*model.RequestPage, error) {
	f.calls = append(f.calls, page)
	if f.err != nil {
		return nil, f.err
	}
	data := make([]model.Request, 0, 10)
	for i := 0; i < 10; i++ {
		data = append(data, model.Request{ID: uint64((page-1)*10 + i + 1)})
	}
	return &model.RequestPage{Data: data, CurrentPage: page, LastPage: f.last, Total: f.last * 10}, nil
}

func TestPager_InitialState(t *testing.T) {
	p := New((&fakeFetcher{last: 3}).fetch)
	assert.Equal(t, 1, p.Current())
	assert.Equal(t, 1, p.Last())
	assert.False(t, p.CanPrev())
	assert.False(t, p.CanNext())
}

func TestPager_DisabledNavigationIssuesNoCall(t *testing.T) {
	ctx := context.Background()
	f := &fakeFetcher{last: 3}
	p := New(f.fetch)
	require.NoError(t, p.Load(ctx, 1))

	// 第一页: 上一页禁用
	assert.False(t, p.CanPrev())
	assert.True(t, p.CanNext())
	fetched, err := p.Prev(ctx)
	require.NoError(t, err)
	assert.False(t, fetched)

	fetched, err = p.Goto(ctx, 1)
	require.NoError(t, err)
	assert.False(t, fetched)

	fetched, err = p.Goto(ctx, 4)
	require.NoError(t, err)
	assert.False(t, fetched)

	fetched, err = p.Goto(ctx, 0)
	require.NoError(t, err)
	assert.False(t, fetched)

	assert.Equal(t, []int{1}, f.calls)

	// 最后一页: 下一页禁用
	fetched, err = p.Goto(ctx, 3)
	require.NoError(t, err)
	assert.True(t, fetched)
	assert.True(t, p.CanPrev())
	assert.False(t, p.CanNext())

	fetched, err = p.Next(ctx)
	require.NoError(t, err)
	assert.False(t, fetched)
	assert.Equal(t, []int{1, 3}, f.calls)
}

func TestPager_NextPrev(t *testing.T) {
	ctx := context.Background()
	f := &fakeFetcher{last: 3}
	p := New(f.fetch)
	require.NoError(t, p.Load(ctx, 1))

	_, err := p.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Current())

	r, ok := p.Row(11)
	require.True(t, ok)
	assert.Equal(t, uint64(11), r.ID)
	_, ok = p.Row(1)
	assert.False(t, ok)

	_, err = p.Prev(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Current())

	require.NoError(t, p.Refresh(ctx))
	assert.Equal(t, []int{1, 2, 1, 1}, f.calls)
}

func TestPager_ErrorKeepsPage(t *testing.T) {
	ctx := context.Background()
	f := &fakeFetcher{last: 2}
	p := New(f.fetch)
	require.NoError(t, p.Load(ctx, 1))

	f.err = errors.New("boom")
	_, err := p.Next(ctx)
	assert.Error(t, err)
	assert.Equal(t, 1, p.Current())
	assert.Len(t, p.Page().Data, 10)
}

func TestPager_EmptyEnvelope(t *testing.T) {
	p := New(func(context.Context, int) (*model.RequestPage, error) {
		return &model.RequestPage{}, nil
	})
	require.NoError(t, p.Load(context.Background(), 1))
	assert.Equal(t, 1, p.Current())
	assert.Equal(t, 1, p.Last())
	assert.False(t, p.CanNext())
}
