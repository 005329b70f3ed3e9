package services_test

import (
	"context"
	"testing"

	"reclaim/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-123")
	ctx = services.WithJob(ctx, "transcode")

	if id, ok := services.RunIDFromContext(ctx); !ok || id != "run-123" {
		t.Fatalf("unexpected run id: %v %v", id, ok)
	}
	if job, ok := services.JobFromContext(ctx); !ok || job != "transcode" {
		t.Fatalf("unexpected job: %v %v", job, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	if got := services.WithJob(ctx, ""); got != ctx {
		t.Fatal("expected blank job to return the same context")
	}
	if _, ok := services.RunIDFromContext(services.WithRunID(ctx, "")); ok {
		t.Fatal("expected blank run id to be ignored")
	}
}
