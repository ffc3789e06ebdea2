package usecase_test

import (
	"os"

	"github.com/fairyhunter13/course-advisor/internal/domain"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}

// fakeRetriever returns canned candidates or a canned error.
type fakeRetriever struct {
	candidates []domain.CourseCandidate
	err        error
	calls      int
	lastQuery  string
	lastTopK   int
}

func (f *fakeRetriever) Search(_ domain.Context, queryText string, topK int) ([]domain.CourseCandidate, error) {
	f.calls++
	f.lastQuery = queryText
	f.lastTopK = topK
	if f.err != nil {
		return nil, f.err
	}
	return f.candidates, nil
}

// fakeGenerator scripts TextGenerator responses per call.
type fakeGenerator struct {
	texts []string
	err   error
	calls int
}

func (f *fakeGenerator) Generate(_ domain.Context, _, _ string, _ int) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if len(f.texts) == 0 {
		return "", nil
	}
	text := f.texts[0]
	if len(f.texts) > 1 {
		f.texts = f.texts[1:]
	}
	return text, nil
}

// fakeStore captures saved runs.
type fakeStore struct {
	saved []domain.RecommendationRun
	err   error
}

func (f *fakeStore) Save(_ domain.Context, run domain.RecommendationRun) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved = append(f.saved, run)
	return "run-1", nil
}

func (f *fakeStore) Recent(_ domain.Context, _ int) ([]domain.RecommendationRun, error) {
	return f.saved, f.err
}
