package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/todoforge/backend/internal/console"
	"github.com/todoforge/backend/repository/memory"
	taskUC "github.com/todoforge/backend/usecase/task"
)

func main() {
	store := memory.NewTaskRepository()
	service := taskUC.New(store, nil, zap.NewNop())

	app := console.New(service, os.Stdin, os.Stdout)
	app.Run(context.Background())
}
