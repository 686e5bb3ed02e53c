package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/yungbote/notequiz-backend/internal/data/repos/testutil"
	"github.com/yungbote/notequiz-backend/internal/platform/objectstore"
)

type fakeLLM struct {
	mu       sync.Mutex
	response string
	err      error
	calls    int
	system   string
	prompt   string
	ctxErr   error
}

func (f *fakeLLM) GenerateText(ctx context.Context, system string, user string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.system = system
	f.prompt = user
	f.ctxErr = ctx.Err()
	return f.response, f.err
}

type fakeStore struct {
	mu          sync.Mutex
	objects     map[string][]byte
	types       map[string]string
	uploadErr   error
	deleteErr   error
	uploadCalls int
	deleteCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeStore) Upload(ctx context.Context, key string, contentType string, body io.Reader) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploadCalls++
	if f.uploadErr != nil {
		return f.uploadErr
	}
	if _, exists := f.objects[key]; exists {
		return errors.New("object already exists")
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.objects[key] = b
	f.types[key] = contentType
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, key)
	delete(f.types, key)
	return nil
}

func (f *fakeStore) Download(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.objects[key]
	if !ok {
		return nil, objectstore.ErrNotFound
	}
	return bytes.Clone(b), nil
}

func (f *fakeStore) PublicURL(key string) string {
	return "https://blob.test/study-materials/" + key
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

// quizJSON renders n well-formed questions the way the model is asked to.
func quizJSON(n int) string {
	b, err := json.Marshal(testutil.Questions(n))
	if err != nil {
		panic(fmt.Sprintf("marshal questions: %v", err))
	}
	return string(b)
}
