// Package console implements the single-user, menu-driven face of the todo
// application on top of the in-memory task store.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	taskUC "github.com/todoforge/backend/usecase/task"
)

// App drives the line-based menu loop.
type App struct {
	svc *taskUC.UseCase
	in  *bufio.Reader
	out io.Writer
}

// New wires the console app to a task service and an input/output pair.
func New(svc *taskUC.UseCase, in io.Reader, out io.Writer) *App {
	return &App{
		svc: svc,
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Run shows the menu until the user picks Exit or input is exhausted.
func (a *App) Run(ctx context.Context) {
	a.printWelcome()

	for {
		a.printMenu()
		choice, err := a.prompt(">> Enter your choice: ")
		if err != nil {
			break
		}

		switch choice {
		case "0":
			a.printGoodbye()
			return
		case "1":
			a.handleAdd(ctx)
		case "2":
			a.handleView(ctx)
		case "3":
			a.handleUpdate(ctx)
		case "4":
			a.handleDelete(ctx)
		case "5":
			a.handleToggle(ctx)
		default:
			fmt.Fprintln(a.out)
			fmt.Fprintln(a.out, "❌ [ERROR] Invalid choice. Please enter a number from the menu.")
		}
	}
	a.printGoodbye()
}

func (a *App) printWelcome() {
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, strings.Repeat("=", 54))
	fmt.Fprintln(a.out, "          🎯 TODO APPLICATION")
	fmt.Fprintln(a.out, strings.Repeat("=", 54))
	fmt.Fprintln(a.out, "Welcome! Manage your tasks with this simple app.")
	fmt.Fprintln(a.out)
}

func (a *App) printMenu() {
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "+"+strings.Repeat("-", 34)+"+")
	fmt.Fprintln(a.out, "|             MAIN MENU            |")
	fmt.Fprintln(a.out, "+"+strings.Repeat("-", 34)+"+")
	fmt.Fprintln(a.out, "|  1. ➕ Add Task                  |")
	fmt.Fprintln(a.out, "|  2. 📋 View Tasks                |")
	fmt.Fprintln(a.out, "|  3. ✏️ Update Task                |")
	fmt.Fprintln(a.out, "|  4. 🗑️ Delete Task                |")
	fmt.Fprintln(a.out, "|  5. ✅ Toggle Complete           |")
	fmt.Fprintln(a.out, "|  0. 🚪 Exit                      |")
	fmt.Fprintln(a.out, "+"+strings.Repeat("-", 34)+"+")
}

func (a *App) printGoodbye() {
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "👋 Goodbye! Have a productive day! 👋")
	fmt.Fprintln(a.out)
}

// prompt prints the message and reads one trimmed line.
func (a *App) prompt(message string) (string, error) {
	fmt.Fprint(a.out, message)
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptID asks for a task id, returning false when the input is not a number.
func (a *App) promptID(message string) (int64, bool) {
	raw, err := a.prompt(message)
	if err != nil {
		return 0, false
	}
	id, convErr := strconv.ParseInt(raw, 10, 64)
	if convErr != nil {
		fmt.Fprintln(a.out, "❌ Please enter a valid number.")
		return 0, false
	}
	return id, true
}
