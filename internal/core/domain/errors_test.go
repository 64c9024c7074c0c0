package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/qsnap/internal/core/domain"
)

func TestPipelineError_Format(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := domain.NewRenderError("https://q.uiver.app/#q=AA", cause)

	assert.Equal(t, "render error (https://q.uiver.app/#q=AA): boom", err.Error())
	assert.Equal(t, "render error (https://q.uiver.app/#q=AA)", err.Message())
	assert.ErrorIs(t, err, cause)
	assert.NotEmpty(t, err.Hint)
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	cause := errors.New("x")
	tests := []struct {
		err   error
		kind  domain.ErrorKind
		fatal bool
	}{
		{domain.NewURLParseError("u", cause), domain.KindURLParse, false},
		{domain.NewDecodeError("u", cause), domain.KindDecode, false},
		{domain.NewRenderError("u", cause), domain.KindRender, false},
		{domain.NewFileIOError("p", cause), domain.KindFileIO, true},
		{fmt.Errorf("wrapped: %w", domain.NewFileIOError("p", cause)), domain.KindFileIO, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.kind, domain.KindOf(tt.err))
		assert.Equal(t, tt.fatal, domain.KindOf(tt.err).Fatal())
	}

	assert.Equal(t, domain.ErrorKind(0), domain.KindOf(cause))
	assert.Equal(t, "unknown error", domain.KindOf(cause).String())
}

func TestReferenceURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://q.uiver.app/#q=AAAA", domain.ReferenceURL(domain.DefaultHost, "AAAA"))
}

func TestEdgeStyle_Normalize(t *testing.T) {
	t.Parallel()

	var nilStyle *domain.EdgeStyle
	assert.Nil(t, nilStyle.Normalize())
	assert.Nil(t, (&domain.EdgeStyle{}).Normalize())

	name := "dashed"
	s := &domain.EdgeStyle{BodyName: &name}
	assert.Same(t, s, s.Normalize())
}
