package commands_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ltask/internal/commands"
	"ltask/internal/config"
	"ltask/internal/exitcode"
	"ltask/internal/service"
	"ltask/internal/testutil"
)

const taskID = "0b7e4c1e-4c35-4b8e-9a51-3f3d1c2a9e10"

// runCommand is a helper to run a command with FakeService.
func runCommand(t *testing.T, cmd commands.Command, svc service.TaskService, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()
	cfg := config.New(t.TempDir())
	cfg.Quiet = quiet
	return runWithConfig(t, cmd, cfg, svc, args)
}

func runWithConfig(t *testing.T, cmd commands.Command, cfg *config.Config, svc service.TaskService, args []string) (stdout, stderr string, code int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	code = cmd.Run(context.Background(), cfg, svc, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func fullService() *testutil.FakeService {
	svc := testutil.NewFakeService(service.VariantFull)
	svc.AddTask("task1", "Buy milk", false)
	svc.AddTask("task2", "Buy eggs", true)
	return svc
}

func TestVersionCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.VersionCmd{}, nil, nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "ltask 0.1.0\n", stdout)
}

func TestHelpCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.HelpCmd{}, nil, nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	testutil.GoldenString(t, "help", stdout)
}

func TestListCommand_WithTasks(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, fullService(), nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "   1  Buy milk\n   2  Buy eggs (Completed)\n", stdout)
}

func TestListCommand_ShowIDs(t *testing.T) {
	cmd := &commands.ListCmd{}
	cmd.SetShowIDs(true)
	stdout, _, code := runCommand(t, cmd, fullService(), nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "   1  Buy milk  [task1]\n   2  Buy eggs (Completed)  [task2]\n", stdout)
}

func TestListCommand_Empty(t *testing.T) {
	svc := testutil.NewFakeService(service.VariantFull)

	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, svc, nil, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "no tasks found\n", stdout)

	// Quiet mode should suppress "no tasks found"
	stdout, _, code = runCommand(t, &commands.ListCmd{}, svc, nil, true)
	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stdout)
}

func TestListCommand_BasicStore(t *testing.T) {
	svc := testutil.NewFakeService(service.VariantBasic)
	svc.AddTask("", "call mum", false)

	stdout, _, code := runCommand(t, &commands.ListCmd{}, svc, nil, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "   1  call mum\n", stdout)
}

func TestListCommand_UnexpectedArgument(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.ListCmd{}, fullService(), []string{"work"}, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: unexpected argument: work\n", stderr)
}

func TestListCommand_BackendError(t *testing.T) {
	svc := fullService()
	svc.ListErr = errors.New("disk on fire")

	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, svc, nil, false)
	assert.Equal(t, exitcode.BackendError, code)
	assert.Empty(t, stdout)
	assert.Equal(t, "error: backend error: disk on fire\n", stderr)
}

func TestAddCommand_Success(t *testing.T) {
	svc := testutil.NewFakeService(service.VariantFull)

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"Buy", "milk", "now"}, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "ok\n", stdout)

	tasks := svc.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk now", tasks[0].Text)
	assert.False(t, tasks[0].Completed)
}

func TestAddCommand_Quiet(t *testing.T) {
	svc := testutil.NewFakeService(service.VariantBasic)

	stdout, _, code := runCommand(t, &commands.AddCmd{}, svc, []string{"note"}, true)
	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stdout)
	assert.Len(t, svc.Tasks(), 1)
}

func TestAddCommand_BlankIsIgnored(t *testing.T) {
	for name, args := range map[string][]string{
		"no args":    nil,
		"whitespace": {"  ", "\t"},
	} {
		t.Run(name, func(t *testing.T) {
			svc := testutil.NewFakeService(service.VariantFull)

			stdout, stderr, code := runCommand(t, &commands.AddCmd{}, svc, args, false)
			assert.Equal(t, exitcode.Success, code)
			assert.Empty(t, stdout)
			assert.Empty(t, stderr)
			assert.Empty(t, svc.Tasks())
		})
	}
}

func TestEditCommand_Success(t *testing.T) {
	svc := fullService()

	stdout, stderr, code := runCommand(t, &commands.EditCmd{}, svc, []string{"2", "Buy", "bread"}, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "ok\n", stdout)

	got := svc.Tasks()[1]
	assert.Equal(t, "Buy bread", got.Text)
	assert.True(t, got.Completed, "edit keeps the completed flag")
}

func TestEditCommand_BlankText(t *testing.T) {
	svc := fullService()

	stdout, stderr, code := runCommand(t, &commands.EditCmd{}, svc, []string{"1", " "}, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)
	assert.Equal(t, "Buy milk", svc.Tasks()[0].Text)
}

func TestEditCommand_OutOfRangeWithBlankText(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.EditCmd{}, fullService(), []string{"3"}, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: task number out of range: 3\n", stderr)
}

func TestEditCommand_BasicStoreUnsupported(t *testing.T) {
	svc := testutil.NewFakeService(service.VariantBasic)
	svc.AddTask("", "note", false)

	_, stderr, code := runCommand(t, &commands.EditCmd{}, svc, []string{"1", "changed"}, false)
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: edit is not supported by the basic store\n", stderr)
}

func TestAddCommand_InvalidUTF8(t *testing.T) {
	svc := testutil.NewFakeService(service.VariantFull)

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"caf\xe9"}, false)
	assert.Equal(t, exitcode.UserError, code)
	assert.Empty(t, stdout)
	assert.Equal(t, "error: task text is not valid UTF-8\n", stderr)
	assert.Empty(t, svc.Tasks())
}

func TestDoneCommand_Success(t *testing.T) {
	svc := fullService()

	stdout, stderr, code := runCommand(t, &commands.DoneCmd{}, svc, []string{"1"}, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "ok\n", stdout)
	assert.Equal(t, []string{"complete #0"}, svc.Calls)
	assert.True(t, svc.Tasks()[0].Completed)
}

func TestDoneCommand_AlreadyCompleted(t *testing.T) {
	svc := fullService()

	_, _, code := runCommand(t, &commands.DoneCmd{}, svc, []string{"2"}, false)
	assert.Equal(t, exitcode.Success, code)
	assert.True(t, svc.Tasks()[1].Completed)
}

func TestDoneCommand_ByID(t *testing.T) {
	svc := testutil.NewFakeService(service.VariantFull)
	svc.AddTask("other", "first", false)
	svc.AddTask(taskID, "second", false)

	_, _, code := runCommand(t, &commands.DoneCmd{}, svc, []string{taskID}, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, []string{"complete " + taskID}, svc.Calls)
	assert.False(t, svc.Tasks()[0].Completed)
	assert.True(t, svc.Tasks()[1].Completed)
}

func TestDoneCommand_UnknownID(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.DoneCmd{}, fullService(), []string{taskID}, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: task not found: "+taskID+"\n", stderr)
}

func TestDoneCommand_BadReferences(t *testing.T) {
	cases := map[string]struct {
		args []string
		want string
	}{
		"no ref":       {nil, "error: task reference required\n"},
		"invalid ref":  {[]string{"abc"}, "error: invalid task reference: abc\n"},
		"zero":         {[]string{"0"}, "error: task number out of range: 0\n"},
		"out of range": {[]string{"5"}, "error: task number out of range: 5\n"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			svc := fullService()

			stdout, stderr, code := runCommand(t, &commands.DoneCmd{}, svc, tc.args, false)
			assert.Equal(t, exitcode.UserError, code)
			assert.Empty(t, stdout)
			assert.Equal(t, tc.want, stderr)
			assert.Equal(t, fullService().Tasks(), svc.Tasks())
		})
	}
}

func TestDoneCommand_BasicStoreUnsupported(t *testing.T) {
	svc := testutil.NewFakeService(service.VariantBasic)
	svc.AddTask("", "note", false)

	_, stderr, code := runCommand(t, &commands.DoneCmd{}, svc, []string{"1"}, false)
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: done is not supported by the basic store\n", stderr)
}

func TestRmCommand_Success(t *testing.T) {
	svc := fullService()

	stdout, _, code := runCommand(t, &commands.RmCmd{}, svc, []string{"1"}, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "ok\n", stdout)

	tasks := svc.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy eggs", tasks[0].Text)
}

func TestRmCommand_BasicStore(t *testing.T) {
	svc := testutil.NewFakeService(service.VariantBasic)
	svc.AddTask("", "a", false)
	svc.AddTask("", "b", false)

	_, _, code := runCommand(t, &commands.RmCmd{}, svc, []string{"2"}, true)
	assert.Equal(t, exitcode.Success, code)
	require.Len(t, svc.Tasks(), 1)
	assert.Equal(t, "a", svc.Tasks()[0].Text)
}

func TestRmCommand_BasicStoreRejectsID(t *testing.T) {
	svc := testutil.NewFakeService(service.VariantBasic)
	svc.AddTask("", "a", false)

	_, stderr, code := runCommand(t, &commands.RmCmd{}, svc, []string{taskID}, false)
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: rm is not supported by the basic store\n", stderr)
	assert.Len(t, svc.Tasks(), 1)
}

func TestRmCommand_BackendError(t *testing.T) {
	svc := fullService()
	svc.DeleteErr = errors.New("read-only file system")

	_, stderr, code := runCommand(t, &commands.RmCmd{}, svc, []string{"1"}, false)
	assert.Equal(t, exitcode.BackendError, code)
	assert.Equal(t, "error: backend error: read-only file system\n", stderr)
}

const sydney = `{"weather":[{"description":"clear sky"}],"main":{"temp":21.5,"pressure":1013,"humidity":64},"name":"Sydney","cod":200}`

// weatherConfig points the weather settings at srv and writes an API key file.
func weatherConfig(t *testing.T, srv *httptest.Server) *config.Config {
	t.Helper()
	dir := t.TempDir()
	keyFile := filepath.Join(dir, "owm.key")
	require.NoError(t, os.WriteFile(keyFile, []byte("secret\n"), 0o600))
	t.Setenv("LTASK_TEST_OWM_KEY", keyFile)

	cfg := config.New(dir)
	cfg.Weather.Endpoint = srv.URL
	cfg.Weather.APIKeyEnv = "LTASK_TEST_OWM_KEY"
	return cfg
}

func weatherServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestWeatherCommand(t *testing.T) {
	cases := map[string]struct {
		status     int
		body       string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		"success": {
			status:     http.StatusOK,
			body:       sydney,
			wantCode:   exitcode.Success,
			wantStdout: "Temperature: 21.5°C\nPressure: 1013 hPa\nHumidity: 64%\nDescription: clear sky\n",
		},
		"city not found": {
			status:     http.StatusNotFound,
			body:       `{"cod":"404","message":"city not found"}`,
			wantCode:   exitcode.UserError,
			wantStdout: "City not found.\n",
		},
		"bad key": {
			status:     http.StatusUnauthorized,
			body:       `{"cod":401,"message":"Invalid API key."}`,
			wantCode:   exitcode.ConfigError,
			wantStderr: "error: Invalid API key.: API key rejected\n",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			srv := weatherServer(t, tc.status, tc.body)
			cmd := &commands.WeatherCmd{}
			cmd.SetHTTPClient(srv.Client())

			stdout, stderr, code := runWithConfig(t, cmd, weatherConfig(t, srv), nil, []string{"Sydney"})
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantStdout, stdout)
			assert.Equal(t, tc.wantStderr, stderr)
		})
	}
}

func TestWeatherCommand_UpstreamError(t *testing.T) {
	srv := weatherServer(t, http.StatusInternalServerError, "oops")
	cmd := &commands.WeatherCmd{}
	cmd.SetHTTPClient(srv.Client())

	stdout, stderr, code := runWithConfig(t, cmd, weatherConfig(t, srv), nil, []string{"Perth"})
	assert.Equal(t, exitcode.BackendError, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "error: backend error: ")
}

func TestWeatherCommand_MissingKey(t *testing.T) {
	t.Setenv("LTASK_TEST_OWM_KEY", "")
	cfg := config.New(t.TempDir())
	cfg.Weather.APIKeyEnv = "LTASK_TEST_OWM_KEY"

	_, stderr, code := runWithConfig(t, &commands.WeatherCmd{}, cfg, nil, []string{"Perth"})
	assert.Equal(t, exitcode.ConfigError, code)
	assert.Contains(t, stderr, "missing API key")
}

func TestWeatherCommand_CityRequired(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.WeatherCmd{}, nil, []string{" "}, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: city required\n", stderr)
}
