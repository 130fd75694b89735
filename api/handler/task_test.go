package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/todoforge/backend/api/transport"
	"github.com/todoforge/backend/domain"
	"github.com/todoforge/backend/internal/middleware"
	"github.com/todoforge/backend/repository/memory"
	taskUC "github.com/todoforge/backend/usecase/task"
)

func newTaskHandler() (*TaskHandler, *taskUC.UseCase) {
	uc := taskUC.New(memory.NewTaskRepository(), nil, zap.NewNop())
	return NewTaskHandler(uc, nil, zap.NewNop()), uc
}

// newRequestCtx builds a request the way the router hands it to handlers:
// identity in the auth header, path values as user values.
func newRequestCtx(owner, body string) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.SetRequestURI("/api/todos/")
	if owner != "" {
		req.Header.Set(middleware.UserIDHeader, owner)
	}
	if body != "" {
		req.SetBody([]byte(body))
	}

	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	return ctx
}

func decodeEnvelope(t *testing.T, ctx *fasthttp.RequestCtx) transport.Envelope {
	t.Helper()
	var envelope transport.Envelope
	if err := json.Unmarshal(ctx.Response.Body(), &envelope); err != nil {
		t.Fatalf("response is not a JSON envelope: %v\n%s", err, ctx.Response.Body())
	}
	return envelope
}

func TestTaskHandler_CreateAndGet(t *testing.T) {
	h, _ := newTaskHandler()

	ctx := newRequestCtx("alice", `{"title":"Buy milk","description":"2 liters"}`)
	h.Create(ctx)
	if ctx.Response.StatusCode() != http.StatusCreated {
		t.Fatalf("Create status = %d, want 201\n%s", ctx.Response.StatusCode(), ctx.Response.Body())
	}
	envelope := decodeEnvelope(t, ctx)
	if envelope.Status != "success" {
		t.Fatalf("envelope.Status = %q", envelope.Status)
	}

	getCtx := newRequestCtx("alice", "")
	getCtx.SetUserValue("id", "1")
	h.Get(getCtx)
	if getCtx.Response.StatusCode() != http.StatusOK {
		t.Fatalf("Get status = %d, want 200", getCtx.Response.StatusCode())
	}

	var fetched struct {
		Data domain.Task `json:"data"`
	}
	if err := json.Unmarshal(getCtx.Response.Body(), &fetched); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if fetched.Data.Title != "Buy milk" || fetched.Data.ID != 1 {
		t.Errorf("fetched task = %+v", fetched.Data)
	}
}

func TestTaskHandler_MissingIdentity(t *testing.T) {
	h, _ := newTaskHandler()

	ctx := newRequestCtx("", `{"title":"x"}`)
	h.Create(ctx)
	if ctx.Response.StatusCode() != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", ctx.Response.StatusCode())
	}
}

func TestTaskHandler_InvalidID(t *testing.T) {
	h, _ := newTaskHandler()

	for _, raw := range []string{"abc", "0", "-4", ""} {
		ctx := newRequestCtx("alice", "")
		ctx.SetUserValue("id", raw)
		h.Get(ctx)
		if ctx.Response.StatusCode() != http.StatusBadRequest {
			t.Errorf("Get with id %q status = %d, want 400", raw, ctx.Response.StatusCode())
		}
	}
}

func TestTaskHandler_InvalidTitleRejected(t *testing.T) {
	h, _ := newTaskHandler()

	ctx := newRequestCtx("alice", `{"title":"   "}`)
	h.Create(ctx)
	if ctx.Response.StatusCode() != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", ctx.Response.StatusCode())
	}
	envelope := decodeEnvelope(t, ctx)
	if envelope.Code != string(domain.ErrCodeInvalid) {
		t.Errorf("envelope.Code = %q, want INVALID", envelope.Code)
	}
}

func TestTaskHandler_ForeignTaskIsNotFound(t *testing.T) {
	h, uc := newTaskHandler()

	created, err := uc.CreateTask(context.Background(), "alice", taskUC.CreateInput{Title: "private"})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	ctx := newRequestCtx("bob", "")
	ctx.SetUserValue("id", "1")
	h.Get(ctx)
	if ctx.Response.StatusCode() != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for task %d owned by someone else", ctx.Response.StatusCode(), created.ID)
	}
}

func TestTaskHandler_UpdateDistinguishesAbsentFromEmpty(t *testing.T) {
	h, uc := newTaskHandler()

	if _, err := uc.CreateTask(context.Background(), "alice", taskUC.CreateInput{Title: "keep", Description: "wipe me"}); err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	// The body names only description; title must survive.
	ctx := newRequestCtx("alice", `{"description":""}`)
	ctx.SetUserValue("id", "1")
	h.Update(ctx)
	if ctx.Response.StatusCode() != http.StatusOK {
		t.Fatalf("Update status = %d, want 200\n%s", ctx.Response.StatusCode(), ctx.Response.Body())
	}

	var updated struct {
		Data domain.Task `json:"data"`
	}
	if err := json.Unmarshal(ctx.Response.Body(), &updated); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if updated.Data.Title != "keep" {
		t.Errorf("Title = %q, want untouched %q", updated.Data.Title, "keep")
	}
	if updated.Data.Description != "" {
		t.Errorf("Description = %q, want wiped", updated.Data.Description)
	}
}

func TestTaskHandler_DeleteReturnsNoContent(t *testing.T) {
	h, uc := newTaskHandler()

	if _, err := uc.CreateTask(context.Background(), "alice", taskUC.CreateInput{Title: "gone soon"}); err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	ctx := newRequestCtx("alice", "")
	ctx.SetUserValue("id", "1")
	h.Delete(ctx)
	if ctx.Response.StatusCode() != http.StatusNoContent {
		t.Errorf("status = %d, want 204", ctx.Response.StatusCode())
	}
	if len(ctx.Response.Body()) != 0 {
		t.Errorf("204 response carries a body: %s", ctx.Response.Body())
	}

	again := newRequestCtx("alice", "")
	again.SetUserValue("id", "1")
	h.Delete(again)
	if again.Response.StatusCode() != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", again.Response.StatusCode())
	}
}

func TestTaskHandler_ToggleComplete(t *testing.T) {
	h, uc := newTaskHandler()

	if _, err := uc.CreateTask(context.Background(), "alice", taskUC.CreateInput{Title: "flip"}); err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	ctx := newRequestCtx("alice", "")
	ctx.SetUserValue("id", "1")
	h.ToggleComplete(ctx)
	if ctx.Response.StatusCode() != http.StatusOK {
		t.Fatalf("status = %d, want 200", ctx.Response.StatusCode())
	}

	var toggled struct {
		Data domain.Task `json:"data"`
	}
	if err := json.Unmarshal(ctx.Response.Body(), &toggled); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if !toggled.Data.Completed {
		t.Error("task should be completed after toggle")
	}
}

func TestTaskHandler_ListEmptyIsAnArray(t *testing.T) {
	h, _ := newTaskHandler()

	ctx := newRequestCtx("alice", "")
	h.List(ctx)
	if ctx.Response.StatusCode() != http.StatusOK {
		t.Fatalf("status = %d, want 200", ctx.Response.StatusCode())
	}

	var listed struct {
		Data []domain.Task `json:"data"`
	}
	if err := json.Unmarshal(ctx.Response.Body(), &listed); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if listed.Data == nil {
		t.Error("data should be an empty array, not null")
	}
}
