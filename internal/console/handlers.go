package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/todoforge/backend/domain"
	taskUC "github.com/todoforge/backend/usecase/task"
)

// Status and feedback decorations.
const (
	emojiSuccess = "✅"
	emojiError   = "❌"
	emojiInfo    = "ℹ️"
	emojiDone    = "✅"
	emojiTodo    = "⬜"
)

// Bounded classification choices offered by the menu.
const (
	priorityHigh   = "🔴"
	priorityMedium = "🟡"
	priorityLow    = "🟢"

	categoryWork     = "💼"
	categoryHome     = "🏠"
	categoryHealth   = "💪"
	categoryShopping = "🛒"
	categoryPersonal = "🎯"
	categoryOther    = "📌"
)

var categoryChoices = map[string]string{
	"1": categoryWork,
	"2": categoryHome,
	"3": categoryHealth,
	"4": categoryShopping,
	"5": categoryPersonal,
	"6": categoryOther,
}

var priorityChoices = map[string]string{
	"1": priorityHigh,
	"2": priorityMedium,
	"3": priorityLow,
}

func (a *App) handleAdd(ctx context.Context) {
	fmt.Fprintln(a.out)

	title, err := a.prompt("📝 Enter task title: ")
	if err != nil {
		return
	}
	description, err := a.prompt("📄 Enter task description (press Enter to skip): ")
	if err != nil {
		return
	}

	category := a.pickCategory(categoryOther)
	priority := a.pickPriority(priorityLow)

	if _, err := a.svc.CreateTask(ctx, "", taskUC.CreateInput{
		Title:       title,
		Description: description,
		Category:    category,
		Priority:    priority,
	}); err != nil {
		fmt.Fprintf(a.out, "%s %s\n", emojiError, reason(err))
		return
	}
	fmt.Fprintf(a.out, "%s Task added successfully!\n", emojiSuccess)
}

func (a *App) handleView(ctx context.Context) {
	fmt.Fprintln(a.out)

	tasks, err := a.svc.ListTasks(ctx, "")
	if err != nil {
		fmt.Fprintf(a.out, "%s %s\n", emojiError, reason(err))
		return
	}
	if len(tasks) == 0 {
		fmt.Fprintf(a.out, "%s No tasks found. Add your first task! 📝\n", emojiInfo)
		return
	}

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, strings.Repeat("=", 74))
	fmt.Fprintln(a.out, "                               📋 YOUR TASKS")
	fmt.Fprintln(a.out, strings.Repeat("=", 74))
	fmt.Fprintf(a.out, "%-3s | %-8s | %-22s | %-26s | %-5s | %s\n", "ID", "Status", "Title", "Description", "Cat", "Prio")
	fmt.Fprintln(a.out, strings.Repeat("=", 74))

	completed := 0
	for _, task := range tasks {
		status := emojiTodo + " Todo"
		if task.Completed {
			status = emojiDone + " Done"
			completed++
		}
		fmt.Fprintf(a.out, "%-3d | %-8s | %-22s | %-26s | %-5s | %s\n",
			task.ID,
			status,
			truncate(task.Title, 21),
			truncate(task.Description, 25),
			task.Category,
			task.Priority,
		)
	}

	fmt.Fprintln(a.out, strings.Repeat("=", 74))
	fmt.Fprintf(a.out, "%s Total: %d task(s)\n", emojiInfo, len(tasks))
	fmt.Fprintf(a.out, "   Completed: %d %s  |  Pending: %d %s\n", completed, emojiDone, len(tasks)-completed, emojiTodo)
}

func (a *App) handleUpdate(ctx context.Context) {
	fmt.Fprintln(a.out)

	id, ok := a.promptID("🔢 Enter task ID to update: ")
	if !ok {
		return
	}

	task, err := a.svc.GetTask(ctx, id, "")
	if err != nil {
		fmt.Fprintf(a.out, "%s Task with ID %d not found.\n", emojiError, id)
		return
	}

	var patch domain.TaskPatch

	fmt.Fprintf(a.out, "📝 Current title: %s\n", task.Title)
	if newTitle, err := a.prompt("✏️  Enter new title (press Enter to keep current): "); err == nil && newTitle != "" {
		patch.Title = &newTitle
	}

	fmt.Fprintf(a.out, "📄 Current description: %s\n", orEmpty(task.Description))
	if newDesc, err := a.prompt("✏️  Enter new description (press Enter to keep current): "); err == nil && newDesc != "" {
		patch.Description = &newDesc
	}

	fmt.Fprintf(a.out, "📁 Current category: %s\n", task.Category)
	if category, ok := a.pickOptionalCategory(); ok {
		patch.Category = &category
	}

	fmt.Fprintf(a.out, "⚡ Current priority: %s\n", task.Priority)
	if priority, ok := a.pickOptionalPriority(); ok {
		patch.Priority = &priority
	}

	if patch.IsEmpty() {
		fmt.Fprintf(a.out, "%s Nothing to change; task %d left as is.\n", emojiInfo, id)
		return
	}

	if _, err := a.svc.UpdateTask(ctx, id, "", patch); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			fmt.Fprintf(a.out, "%s Task with ID %d not found.\n", emojiError, id)
			return
		}
		fmt.Fprintf(a.out, "%s %s\n", emojiError, reason(err))
		return
	}
	fmt.Fprintf(a.out, "%s Task %d updated successfully!\n", emojiSuccess, id)
}

func (a *App) handleDelete(ctx context.Context) {
	fmt.Fprintln(a.out)

	id, ok := a.promptID("🔢 Enter task ID to delete: ")
	if !ok {
		return
	}

	task, err := a.svc.GetTask(ctx, id, "")
	if err != nil {
		fmt.Fprintf(a.out, "%s Task with ID %d not found.\n", emojiError, id)
		return
	}

	confirm, err := a.prompt(fmt.Sprintf("🗑️  Delete task %d '%s'? (y/n): ", id, task.Title))
	if err != nil {
		return
	}
	if strings.ToLower(confirm) != "y" {
		fmt.Fprintf(a.out, "%s Deletion cancelled.\n", emojiInfo)
		return
	}

	if err := a.svc.DeleteTask(ctx, id, ""); err != nil {
		fmt.Fprintf(a.out, "%s Task with ID %d not found.\n", emojiError, id)
		return
	}
	fmt.Fprintf(a.out, "%s Task %d deleted.\n", emojiSuccess, id)
}

func (a *App) handleToggle(ctx context.Context) {
	fmt.Fprintln(a.out)

	id, ok := a.promptID("🔢 Enter task ID to toggle: ")
	if !ok {
		return
	}

	task, err := a.svc.ToggleTask(ctx, id, "")
	if err != nil {
		fmt.Fprintf(a.out, "%s Task with ID %d not found.\n", emojiError, id)
		return
	}

	if task.Completed {
		fmt.Fprintf(a.out, "%s Task %d marked as complete!\n", emojiSuccess, id)
	} else {
		fmt.Fprintf(a.out, "%s Task %d marked as incomplete.\n", emojiInfo, id)
	}
}

func (a *App) pickCategory(fallback string) string {
	a.printCategoryMenu()
	choice, err := a.prompt(">> Enter choice (1-6, default 6): ")
	if err != nil {
		return fallback
	}
	if category, ok := categoryChoices[choice]; ok {
		return category
	}
	return fallback
}

func (a *App) pickOptionalCategory() (string, bool) {
	a.printCategoryMenu()
	choice, err := a.prompt(">> Enter new category (1-6, press Enter to keep): ")
	if err != nil {
		return "", false
	}
	category, ok := categoryChoices[choice]
	return category, ok
}

func (a *App) pickPriority(fallback string) string {
	a.printPriorityMenu()
	choice, err := a.prompt(">> Enter choice (1-3, default 3): ")
	if err != nil {
		return fallback
	}
	if priority, ok := priorityChoices[choice]; ok {
		return priority
	}
	return fallback
}

func (a *App) pickOptionalPriority() (string, bool) {
	a.printPriorityMenu()
	choice, err := a.prompt(">> Enter new priority (1-3, press Enter to keep): ")
	if err != nil {
		return "", false
	}
	priority, ok := priorityChoices[choice]
	return priority, ok
}

func (a *App) printCategoryMenu() {
	fmt.Fprintln(a.out, "📁 Select category:")
	fmt.Fprintln(a.out, "  1. 💼 Work")
	fmt.Fprintln(a.out, "  2. 🏠 Home")
	fmt.Fprintln(a.out, "  3. 💪 Health")
	fmt.Fprintln(a.out, "  4. 🛒 Shopping")
	fmt.Fprintln(a.out, "  5. 🎯 Personal")
	fmt.Fprintln(a.out, "  6. 📌 Other")
}

func (a *App) printPriorityMenu() {
	fmt.Fprintln(a.out, "⚡ Select priority:")
	fmt.Fprintln(a.out, "  1. 🔴 High")
	fmt.Fprintln(a.out, "  2. 🟡 Medium")
	fmt.Fprintln(a.out, "  3. 🟢 Low")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func orEmpty(s string) string {
	if s == "" {
		return "(empty)"
	}
	return s
}

// reason unwraps the human-readable message of a domain error.
func reason(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
