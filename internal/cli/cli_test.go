package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Eursukkul/restaurant-ledger/config"
	"github.com/Eursukkul/restaurant-ledger/internal/app"
	"github.com/Eursukkul/restaurant-ledger/internal/dto"
	"github.com/Eursukkul/restaurant-ledger/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	a, err := app.New(context.Background(), &config.Config{
		DBDriver:     "memory",
		LockBackend:  "memory",
		MaxCapacity:  10,
		StatusPolicy: "strict",
		Timezone:     "UTC",
	})
	require.NoError(t, err)
	return a
}

// run executes ledgerctl against a and decodes the printed envelope.
func run(t *testing.T, a *app.App, args ...string) (dto.Envelope, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd(func(context.Context) (*app.App, error) { return a, nil })
	root.SetOut(&out)
	root.SetArgs(args)

	err := root.Execute()

	var env dto.Envelope
	require.NoError(t, json.Unmarshal(out.Bytes(), &env), out.String())
	return env, err
}

func exitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 0
}

func TestReservationFlow(t *testing.T) {
	a := newTestApp(t)
	date := time.Now().UTC().AddDate(0, 0, 2).Format("2006-01-02")

	env, err := run(t, a, "reservation", "create",
		"--name", "李四", "--phone", "138", "--date", date,
		"--time-slot", "19:00-21:00", "--party-size", "4", "--channel", "电话")
	require.NoError(t, err)
	assert.True(t, env.Success)

	env, err = run(t, a, "reservation", "query-slots", "--date", date)
	require.NoError(t, err)
	assert.Equal(t, date, env.Date)
	slots := env.Data.([]any)
	require.Len(t, slots, 5)
	assert.Equal(t, float64(6), slots[3].(map[string]any)["remaining_capacity"])

	env, err = run(t, a, "reservation", "query", "--phone", "138")
	require.NoError(t, err)
	require.NotNil(t, env.Total)
	assert.Equal(t, 1, *env.Total)
	id := env.Data.([]any)[0].(map[string]any)["id"].(string)

	env, err = run(t, a, "reservation", "cancel", "--id", id)
	require.NoError(t, err)
	assert.Contains(t, env.Message, "cancelled")
}

func TestReservationCreate_ValidationExitsOne(t *testing.T) {
	a := newTestApp(t)

	env, err := run(t, a, "reservation", "create", "--name", "李四")

	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "missing required field(s)")
	assert.Equal(t, 1, exitCode(err))
}

func TestReservationQuery_RequiresCriteria(t *testing.T) {
	env, err := run(t, newTestApp(t), "reservation", "query")

	assert.False(t, env.Success)
	assert.Equal(t, 1, exitCode(err))
}

func TestOrderFlow(t *testing.T) {
	a := newTestApp(t)

	env, err := run(t, a, "order", "create",
		"--name", "王五", "--phone", "137", "--address", "建国路",
		"--items", `[{"菜品ID":"D001","数量":2}]`, "--total", "76", "--channel", "meituan")
	require.NoError(t, err)
	id := env.Data.(map[string]any)["id"].(string)
	assert.Regexp(t, `^ORD\d{8}001$`, id)

	env, err = run(t, a, "order", "update", "--id", id, "--status", "completed")
	assert.False(t, env.Success)
	assert.Equal(t, 2, exitCode(err))

	env, err = run(t, a, "order", "update", "--id", id, "--status", "preparing")
	require.NoError(t, err)
	assert.True(t, env.Success)

	env, err = run(t, a, "order", "query", "--id", "ORD19990101001")
	assert.Contains(t, env.Error, "not found")
	assert.Equal(t, 2, exitCode(err))
}

func TestOrderCreate_BadItemsJSON(t *testing.T) {
	env, err := run(t, newTestApp(t), "order", "create", "--items", "D001x2")

	assert.Contains(t, env.Error, "items must be a JSON array")
	assert.Equal(t, 1, exitCode(err))
}

func TestMenuCommands(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	require.NoError(t, a.Store.AppendRow(ctx, repository.SheetMenu, []string{"D001", "宫保鸡丁", "热菜", "38", "TRUE", ""}))
	require.NoError(t, a.Store.AppendRow(ctx, repository.SheetMenu, []string{"D002", "拍黄瓜", "凉菜", "12", "true", ""}))
	require.NoError(t, a.Store.AppendRow(ctx, repository.SheetMenu, []string{"D003", "水煮鱼", "热菜", "88", "false", ""}))

	env, err := run(t, a, "menu", "query", "--type", "category", "--value", "热菜")
	require.NoError(t, err)
	assert.Equal(t, 1, *env.Total)

	env, err = run(t, a, "menu", "recommend", "--budget", "20")
	require.NoError(t, err)
	assert.Equal(t, 1, *env.Total)

	env, err = run(t, a, "menu", "check", "--dishes", "宫保鸡丁,水煮鱼")
	require.NoError(t, err)
	result := env.Data.(map[string]any)
	assert.Equal(t, true, result["宫保鸡丁"].(map[string]any)["available"])
	assert.Equal(t, "dish not found", result["水煮鱼"].(map[string]any)["reason"])

	_, err = run(t, a, "menu", "query", "--type", "spicy")
	assert.Equal(t, 1, exitCode(err))
}
