package pipeline_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/qsnap/internal/core/domain"
	"go.trai.ch/qsnap/internal/core/ports"
	"go.trai.ch/qsnap/internal/core/ports/mocks"
	"go.trai.ch/qsnap/internal/engine/codec"
	"go.trai.ch/qsnap/internal/engine/pipeline"
	"go.trai.ch/qsnap/internal/engine/scanner"
	"go.uber.org/mock/gomock"
)

const (
	host     = "q.uiver.app"
	docPath  = "docs/notes.md"
	cacheLoc = ".qsnap/cache.json"
	artDir   = ".qsnap/artifacts"
)

// memFiles is an in-memory FileStore.
type memFiles struct {
	files    map[string]string
	writes   int
	writeErr error
}

func newMemFiles() *memFiles {
	return &memFiles{files: make(map[string]string)}
}

func (m *memFiles) ReadDocument(path string) (string, error) {
	text, ok := m.files[path]
	if !ok {
		return "", errors.New("no such file")
	}
	return text, nil
}

func (m *memFiles) WriteDocument(path, text string) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writes++
	m.files[path] = text
	return nil
}

func (m *memFiles) Exists(path string) bool {
	_, ok := m.files[path]
	return ok
}

func (m *memFiles) Remove(path string) error {
	delete(m.files, path)
	return nil
}

// memCache is an in-memory CacheStore.
type memCache struct {
	records domain.Records
	saves   int
	saveErr error
}

func (m *memCache) Load(string) domain.Records { return m.records }

func (m *memCache) Save(_ string, records domain.Records) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.records = records
	return nil
}

type fixture struct {
	files    *memFiles
	cache    *memCache
	renderer *mocks.MockRenderer
	logger   *mocks.MockLogger
	pipe     *pipeline.Pipeline
	renders  int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		files:    newMemFiles(),
		cache:    &memCache{},
		renderer: mocks.NewMockRenderer(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}

	tracer := mocks.NewMockTracer(ctrl)
	span := mocks.NewMockSpan(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Span) {
			return ctx, span
		}).AnyTimes()
	span.EXPECT().End().AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()

	f.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.renderer.EXPECT().Extension().Return("png").AnyTimes()

	f.pipe = pipeline.New(
		scanner.New(host, f.logger),
		f.renderer,
		f.cache,
		f.files,
		tracer,
		f.logger,
		pipeline.Options{CachePath: cacheLoc, ArtifactDir: artDir},
	).WithClock(func() time.Time { return time.Unix(1700000000, 0) })

	return f
}

// expectRenders makes every Render call succeed by writing a placeholder artifact.
func (f *fixture) expectRenders() {
	f.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req domain.RenderRequest) error {
			f.renders++
			f.files.files[req.Dest] = "png"
			return nil
		}).AnyTimes()
}

func triangle(t *testing.T) string {
	t.Helper()
	payload, err := codec.Encode(domain.DiagramGraph{
		Nodes: []domain.Node{
			{ID: 0, X: 0, Y: 0, Label: "A"},
			{ID: 1, X: 1, Y: 0, Label: "B"},
		},
		Edges: []domain.Edge{{ID: 0, Source: 0, Target: 1, Label: "f"}},
	})
	require.NoError(t, err)
	return payload
}

func square(t *testing.T) string {
	t.Helper()
	payload, err := codec.Encode(domain.DiagramGraph{
		Nodes: []domain.Node{
			{ID: 0, X: 0, Y: 0, Label: "A"},
			{ID: 1, X: 1, Y: 0, Label: "B"},
			{ID: 2, X: 0, Y: 1, Label: "C"},
		},
		Edges: []domain.Edge{
			{ID: 0, Source: 0, Target: 1, Label: "f"},
			{ID: 1, Source: 0, Target: 2, Label: "g"},
		},
	})
	require.NoError(t, err)
	return payload
}

func url(payload string) string {
	return domain.ReferenceURL(host, payload)
}

func TestProcess_ScenarioA_FirstRun(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.expectRenders()

	u := url(triangle(t))
	f.files.files[docPath] = "see " + u + " end"

	report, err := f.pipe.Process(context.Background(), docPath)
	require.NoError(t, err)

	assert.Equal(t, 1, f.renders)
	assert.Equal(t, 1, f.cache.records.Len())
	assert.True(t, report.DocumentSaved)
	assert.True(t, report.CacheSaved)
	require.Len(t, report.References, 1)
	assert.Equal(t, domain.OutcomeRendered, report.References[0].Outcome)

	rec, ok := f.cache.records.Get(u)
	require.True(t, ok)
	assert.Equal(t, triangle(t), rec.Payload)
	assert.Equal(t, int64(1700000000), rec.Timestamp)
	assert.True(t, strings.HasPrefix(rec.ArtifactPath, ".qsnap/artifacts/notes-"))
	assert.True(t, strings.HasSuffix(rec.ArtifactPath, ".png"))

	want := "see [![diagram](" + pipeline.LinkPath(docPath, rec.ArtifactPath) + ")](" + u + ") end"
	assert.Equal(t, want, f.files.files[docPath])
	assert.Contains(t, f.files.files[docPath], "(../.qsnap/artifacts/notes-")
}

func TestProcess_ScenarioB_SecondRunIsIdempotent(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.expectRenders()

	f.files.files[docPath] = "see " + url(triangle(t)) + " end"
	_, err := f.pipe.Process(context.Background(), docPath)
	require.NoError(t, err)

	first := f.files.files[docPath]
	writes, saves, renders := f.files.writes, f.cache.saves, f.renders

	report, err := f.pipe.Process(context.Background(), docPath)
	require.NoError(t, err)

	assert.Equal(t, first, f.files.files[docPath])
	assert.Equal(t, writes, f.files.writes)
	assert.Equal(t, saves, f.cache.saves)
	assert.Equal(t, renders, f.renders)
	assert.Equal(t, 1, f.cache.records.Len())
	assert.Empty(t, report.References)
	assert.False(t, report.DocumentSaved)
	assert.False(t, report.CacheSaved)
}

func TestProcess_ScenarioC_ChangedPayloadReplacesRecord(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.expectRenders()

	u := url(square(t))
	prior := domain.CacheRecord{
		URL:          u,
		Payload:      triangle(t),
		ArtifactPath: ".qsnap/artifacts/notes-0000000000000000.png",
		Timestamp:    1,
	}
	other := domain.CacheRecord{URL: url("b3RoZXI"), Payload: "b3RoZXI", ArtifactPath: "x.png"}
	f.cache.records = domain.NewRecords(prior, other)
	f.files.files[prior.ArtifactPath] = "old"
	f.files.files[docPath] = u

	require.True(t, f.cache.records.Changed(u, square(t)))

	_, err := f.pipe.Process(context.Background(), docPath)
	require.NoError(t, err)

	assert.Equal(t, 1, f.renders)
	assert.Equal(t, 2, f.cache.records.Len())
	rec, ok := f.cache.records.Get(u)
	require.True(t, ok)
	assert.Equal(t, square(t), rec.Payload)
	assert.NotEqual(t, prior.ArtifactPath, rec.ArtifactPath)
	assert.Equal(t, u, f.cache.records.All()[1].URL, "replaced record moves to the end")
}

func TestProcess_ScenarioD_ExistingLinkIsNotRescanned(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	u := url(triangle(t))
	text := "[![my diagram](img/hand.png)](" + u + ")"
	f.files.files[docPath] = text

	report, err := f.pipe.Process(context.Background(), docPath)
	require.NoError(t, err)

	assert.Equal(t, text, f.files.files[docPath])
	assert.Empty(t, report.References)
	assert.Zero(t, f.files.writes)
	assert.Zero(t, f.cache.saves)
}

func TestProcess_CacheHitSplicesWithoutRender(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	u := url(triangle(t))
	rec := domain.CacheRecord{URL: u, Payload: triangle(t), ArtifactPath: ".qsnap/artifacts/notes-cached.png"}
	f.cache.records = domain.NewRecords(rec)
	f.files.files[rec.ArtifactPath] = "png"
	f.files.files[docPath] = u + "\n"

	report, err := f.pipe.Process(context.Background(), docPath)
	require.NoError(t, err)

	require.Len(t, report.References, 1)
	assert.Equal(t, domain.OutcomeCacheHit, report.References[0].Outcome)
	assert.True(t, report.DocumentSaved)
	assert.False(t, report.CacheSaved)
	assert.Equal(t, "[![diagram](../.qsnap/artifacts/notes-cached.png)]("+u+")\n", f.files.files[docPath])
}

func TestProcess_MissingArtifactRerenders(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.expectRenders()

	u := url(triangle(t))
	f.cache.records = domain.NewRecords(domain.CacheRecord{URL: u, Payload: triangle(t), ArtifactPath: "gone.png"})
	f.files.files[docPath] = u

	report, err := f.pipe.Process(context.Background(), docPath)
	require.NoError(t, err)

	assert.Equal(t, 1, f.renders)
	assert.Equal(t, domain.OutcomeRendered, report.References[0].Outcome)
	assert.True(t, report.CacheSaved)
}

func TestProcess_MultipleReferencesSplicedRightToLeft(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.expectRenders()

	a, b := url(triangle(t)), url(square(t))
	f.files.files[docPath] = "one " + a + " two " + b + " three"

	report, err := f.pipe.Process(context.Background(), docPath)
	require.NoError(t, err)

	require.Len(t, report.References, 2)
	assert.Less(t, report.References[0].Match.Span.Start, report.References[1].Match.Span.Start)

	out := f.files.files[docPath]
	assert.True(t, strings.HasPrefix(out, "one [![diagram]("))
	assert.Contains(t, out, ")]("+a+") two [![diagram](")
	assert.True(t, strings.HasSuffix(out, ")]("+b+") three"))
	assert.Equal(t, 2, f.cache.records.Len())
}

func TestProcess_DecodeFailureIsSkipped(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.expectRenders()

	bad := url("bm90IGpzb24") // "not json"
	good := url(triangle(t))
	f.files.files[docPath] = bad + " " + good

	f.logger.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		assert.Contains(t, msg, "decode error")
	})

	report, err := f.pipe.Process(context.Background(), docPath)
	require.NoError(t, err)

	require.Len(t, report.References, 2)
	assert.Equal(t, domain.OutcomeFailed, report.References[0].Outcome)
	assert.Equal(t, domain.KindDecode, domain.KindOf(report.References[0].Err))
	assert.Equal(t, domain.OutcomeRendered, report.References[1].Outcome)
	assert.True(t, strings.HasPrefix(f.files.files[docPath], bad+" [![diagram]("))
	assert.Equal(t, 1, f.cache.records.Len())
}

func TestProcess_RenderFailureIsSkipped(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	u := url(triangle(t))
	f.files.files[docPath] = u
	f.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return(errors.New("browser crashed"))
	f.logger.EXPECT().Warn(gomock.Any())

	report, err := f.pipe.Process(context.Background(), docPath)
	require.NoError(t, err)

	assert.Equal(t, domain.KindRender, domain.KindOf(report.References[0].Err))
	assert.ErrorContains(t, report.References[0].Err, "browser crashed")
	assert.Equal(t, u, f.files.files[docPath])
	assert.Zero(t, f.files.writes)
	assert.Zero(t, f.cache.saves)
}

func TestProcess_ReadFailureIsFatal(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.pipe.Process(context.Background(), "missing.md")
	require.Error(t, err)
	assert.Equal(t, domain.KindFileIO, domain.KindOf(err))
	assert.True(t, pipeline.IsFatal(err))
	assert.ErrorContains(t, err, "missing.md")
}

func TestProcess_WriteFailureIsFatal(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.expectRenders()

	f.files.files[docPath] = url(triangle(t))
	f.files.writeErr = errors.New("read-only file system")

	_, err := f.pipe.Process(context.Background(), docPath)
	require.Error(t, err)
	assert.Equal(t, domain.KindFileIO, domain.KindOf(err))
	assert.ErrorContains(t, err, docPath)
	assert.ErrorContains(t, err, "read-only file system")
	assert.Zero(t, f.cache.saves)
}

func TestProcess_CacheSaveFailureIsFatal(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.expectRenders()

	f.files.files[docPath] = url(triangle(t))
	f.cache.saveErr = errors.New("disk full")

	_, err := f.pipe.Process(context.Background(), docPath)
	require.Error(t, err)
	assert.Equal(t, domain.KindFileIO, domain.KindOf(err))
	assert.ErrorContains(t, err, cacheLoc)
}

func TestProcess_CanceledContextStops(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.files.files[docPath] = url(triangle(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.pipe.Process(ctx, docPath)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, f.files.writes)
}

func TestLinkPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		doc      string
		artifact string
		want     string
	}{
		{"same dir", "README.md", ".qsnap/artifacts/a.png", ".qsnap/artifacts/a.png"},
		{"nested doc", "docs/guide/intro.md", ".qsnap/artifacts/a.png", "../../.qsnap/artifacts/a.png"},
		{"spaces", "my notes.md", "art dir/a.png", "art%20dir/a.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, pipeline.LinkPath(tt.doc, tt.artifact))
		})
	}
}

func TestIsFatal(t *testing.T) {
	t.Parallel()

	assert.False(t, pipeline.IsFatal(nil))
	assert.False(t, pipeline.IsFatal(domain.NewDecodeError("u", errors.New("x"))))
	assert.True(t, pipeline.IsFatal(domain.NewFileIOError("p", errors.New("x"))))
	assert.True(t, pipeline.IsFatal(errors.New("plain")))
}
