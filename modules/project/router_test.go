package project_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/taskboard/modules/project"
	"github.com/dmitrymomot/taskboard/pkg/rbac"
	"github.com/dmitrymomot/taskboard/pkg/validator"
)

const roleHeader = "X-Role"

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Meta  map[string]any  `json:"meta"`
	Error *struct {
		Code    string              `json:"code"`
		Message string              `json:"message"`
		Details map[string][]string `json:"details"`
	} `json:"error"`
}

func newServer(t *testing.T) http.Handler {
	t.Helper()

	auth, err := rbac.NewAuthorizer(context.Background(), rbac.NewMemorySource(rbac.DefaultRoles()))
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := project.NewService(project.NewMemoryStorage(), log)
	rt := project.NewRouter(svc, validator.New(validator.WithLooseChoice()), auth, log)

	r := chi.NewRouter()
	r.Use(rbac.Middleware(rbac.HeaderExtractor(roleHeader)))
	r.Mount("/projects", rt.Handle())
	return r
}

func send(t *testing.T, h http.Handler, method, path, role, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set(roleHeader, role)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func createProject(t *testing.T, h http.Handler) project.Project {
	t.Helper()
	rec, env := send(t, h, http.MethodPost, "/projects", "manager", `{"name":"Website","owner_id":1}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var p project.Project
	require.NoError(t, json.Unmarshal(env.Data, &p))
	return p
}

func TestCreateProject(t *testing.T) {
	t.Parallel()

	t.Run("valid input", func(t *testing.T) {
		h := newServer(t)
		rec, env := send(t, h, http.MethodPost, "/projects", "manager",
			`{"name":"Website","owner_id":4,"is_public":true,"start_date":"2024-06-01","ignored":"x"}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var p project.Project
		require.NoError(t, json.Unmarshal(env.Data, &p))
		assert.NotZero(t, p.ID)
		assert.Equal(t, "Website", p.Name)
		assert.Equal(t, int64(4), p.OwnerID)
		assert.Equal(t, project.StatusBacklog, p.StatusID)
		assert.True(t, p.IsPublic)
		require.NotNil(t, p.StartDate)
		assert.Equal(t, "2024-06-01", p.StartDate.Format("2006-01-02"))
		assert.Nil(t, p.Description)
	})

	t.Run("short name", func(t *testing.T) {
		rec, env := send(t, newServer(t), http.MethodPost, "/projects", "manager", `{"name":"Al","owner_id":1}`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "validation_error", env.Error.Code)
		assert.Equal(t, "The given data was invalid.", env.Error.Message)
		assert.Equal(t, map[string][]string{"name": {"The name field must be at least 3."}}, env.Error.Details)
	})

	t.Run("status outside allow-list uses request message", func(t *testing.T) {
		rec, env := send(t, newServer(t), http.MethodPost, "/projects", "manager",
			`{"name":"Website","owner_id":1,"status_id":9}`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, []string{"Choose one of the project statuses."}, env.Error.Details["status_id"])
	})

	t.Run("missing fields are all reported", func(t *testing.T) {
		rec, env := send(t, newServer(t), http.MethodPost, "/projects", "manager", `{}`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, []string{"Give the project a name."}, env.Error.Details["name"])
		assert.Equal(t, []string{"Pick an owner for the project."}, env.Error.Details["owner_id"])
	})

	t.Run("end date before start date", func(t *testing.T) {
		rec, env := send(t, newServer(t), http.MethodPost, "/projects", "manager",
			`{"name":"Website","owner_id":1,"start_date":"2024-06-10","end_date":"2024-06-01"}`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, env.Error.Details, "end_date")
	})

	t.Run("role without permission", func(t *testing.T) {
		rec, env := send(t, newServer(t), http.MethodPost, "/projects", "viewer", `{"name":"Al"}`)
		require.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "forbidden", env.Error.Code)
		assert.Empty(t, env.Error.Details, "authorization runs before validation")
	})

	t.Run("no role", func(t *testing.T) {
		rec, _ := send(t, newServer(t), http.MethodPost, "/projects", "", `{"name":"Website","owner_id":1}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unsupported media type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader("name=x"))
		req.Header.Set("Content-Type", "text/plain")
		req.Header.Set(roleHeader, "manager")
		rec := httptest.NewRecorder()
		newServer(t).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})
}

func TestProjectLifecycle(t *testing.T) {
	t.Parallel()

	h := newServer(t)
	p := createProject(t, h)
	path := "/projects/" + strconv.FormatInt(p.ID, 10)

	rec, env := send(t, h, http.MethodPatch, path, "manager", `{"name":"Website v2","description":"Relaunch"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated project.Project
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Website v2", updated.Name)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "Relaunch", *updated.Description)
	assert.Equal(t, p.OwnerID, updated.OwnerID)

	rec, env = send(t, h, http.MethodGet, "/projects", "viewer", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, env.Meta["total"])

	rec, _ = send(t, h, http.MethodDelete, path, "manager", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = send(t, h, http.MethodDelete, path, "admin", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, env = send(t, h, http.MethodGet, path, "viewer", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", env.Error.Code)
}

func TestGetProject_BadID(t *testing.T) {
	t.Parallel()

	h := newServer(t)
	for _, id := range []string{"abc", "0", "-1", "999"} {
		rec, _ := send(t, h, http.MethodGet, "/projects/"+id, "viewer", "")
		assert.Equal(t, http.StatusNotFound, rec.Code, id)
	}
}

func TestTasks(t *testing.T) {
	t.Parallel()

	h := newServer(t)
	p := createProject(t, h)
	tasksPath := "/projects/" + strconv.FormatInt(p.ID, 10) + "/tasks"

	t.Run("defaults", func(t *testing.T) {
		rec, env := send(t, h, http.MethodPost, tasksPath, "member", `{"title":"Write copy"}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var task project.Task
		require.NoError(t, json.Unmarshal(env.Data, &task))
		assert.Equal(t, p.ID, task.ProjectID)
		assert.Equal(t, project.StatusBacklog, task.StatusID)
		assert.Equal(t, project.DefaultPriority, task.Priority)
		assert.Equal(t, []string{}, task.Tags)
	})

	t.Run("invalid fields", func(t *testing.T) {
		rec, env := send(t, h, http.MethodPost, tasksPath, "member",
			`{"priority":7,"status_id":9,"estimate_hours":"lots","tags":["a","b","c","d","e","f","g","h","i","j","k"]}`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, map[string][]string{
			"title":     {"A task needs a title."},
			"priority":  {"The priority field must be between 1 and 5."},
			"status_id": {"Choose one of the task statuses."},
			"estimate_hours": {"The estimate hours field must be a number."},
			"tags": {"The tags field must not be greater than 10."},
		}, env.Error.Details)
	})

	t.Run("unknown sprint", func(t *testing.T) {
		rec, env := send(t, h, http.MethodPost, tasksPath, "member", `{"title":"Ship","sprint_id":42}`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, []string{"The selected sprint id is invalid."}, env.Error.Details["sprint_id"])
	})

	t.Run("viewer cannot create", func(t *testing.T) {
		rec, _ := send(t, h, http.MethodPost, tasksPath, "viewer", `{"title":"Ship"}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing project", func(t *testing.T) {
		rec, _ := send(t, h, http.MethodPost, "/projects/999/tasks", "member", `{"title":"Ship"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestTaskInSprint(t *testing.T) {
	t.Parallel()

	h := newServer(t)
	p := createProject(t, h)
	base := "/projects/" + strconv.FormatInt(p.ID, 10)

	rec, env := send(t, h, http.MethodPost, base+"/sprints", "manager",
		`{"name":"Sprint 1","start_date":"2024-06-01","end_date":"2024-06-14"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var sprint project.Sprint
	require.NoError(t, json.Unmarshal(env.Data, &sprint))

	rec, env = send(t, h, http.MethodPost, base+"/tasks", "member",
		`{"title":"  Ship \n it ","sprint_id":`+strconv.FormatInt(sprint.ID, 10)+`,"estimate_hours":2.5,"tags":[" ops","ops",""],"due_date":"2024-06-10"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var task project.Task
	require.NoError(t, json.Unmarshal(env.Data, &task))
	require.NotNil(t, task.SprintID)
	assert.Equal(t, sprint.ID, *task.SprintID)
	require.NotNil(t, task.EstimateHours)
	assert.InDelta(t, 2.5, *task.EstimateHours, 1e-9)
	assert.Equal(t, []string{"ops"}, task.Tags)
	assert.Equal(t, "Ship it", task.Title)

	rec, env = send(t, h, http.MethodGet, base+"/sprints", "viewer", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, env.Meta["total"])
}

func TestUpdateTask_Form(t *testing.T) {
	t.Parallel()

	h := newServer(t)
	p := createProject(t, h)
	base := "/projects/" + strconv.FormatInt(p.ID, 10) + "/tasks"

	rec, env := send(t, h, http.MethodPost, base, "member", `{"title":"Ship","description":"first"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var task project.Task
	require.NoError(t, json.Unmarshal(env.Data, &task))

	req := httptest.NewRequest(http.MethodPatch, base+"/"+strconv.FormatInt(task.ID, 10),
		strings.NewReader("status_id=5&priority=1&description="))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(roleHeader, "member")
	res := httptest.NewRecorder()
	h.ServeHTTP(res, req)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())

	var body envelope
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	var updated project.Task
	require.NoError(t, json.Unmarshal(body.Data, &updated))
	assert.Equal(t, project.StatusDone, updated.StatusID)
	assert.Equal(t, 1, updated.Priority)
	assert.Nil(t, updated.Description, "blank form value clears a nullable field")
	assert.Equal(t, "Ship", updated.Title)

	rec, _ = send(t, h, http.MethodPatch, base+"/999", "member", `{"title":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = send(t, h, http.MethodGet, base, "viewer", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, env.Meta["total"])
}

func TestSprintDates(t *testing.T) {
	t.Parallel()

	h := newServer(t)
	p := createProject(t, h)
	path := "/projects/" + strconv.FormatInt(p.ID, 10) + "/sprints"

	rec, env := send(t, h, http.MethodPost, path, "manager", `{"name":"Sprint 1"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, []string{
		"The start date field is required.",
		"The start date field must be a valid date.",
	}, env.Error.Details["start_date"])
	assert.Len(t, env.Error.Details["end_date"], 2)

	rec, env = send(t, h, http.MethodPost, path, "manager",
		`{"name":"Sprint 1","start_date":"2024-06-14","end_date":"2024-06-01"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Error.Details, "end_date")

	rec, _ = send(t, h, http.MethodPost, path, "member",
		`{"name":"Sprint 1","start_date":"2024-06-01","end_date":"2024-06-14"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMilestones(t *testing.T) {
	t.Parallel()

	h := newServer(t)
	p := createProject(t, h)
	path := "/projects/" + strconv.FormatInt(p.ID, 10) + "/milestones"

	rec, env := send(t, h, http.MethodPost, path, "manager", `{"title":"Beta","due_date":"2024-09-01","completed":"0"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var m project.Milestone
	require.NoError(t, json.Unmarshal(env.Data, &m))
	assert.Equal(t, "Beta", m.Title)
	assert.False(t, m.Completed)

	rec, env = send(t, h, http.MethodPost, path, "manager", `{"title":"Beta","due_date":"soon","completed":"maybe"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Error.Details, "due_date")
	assert.Contains(t, env.Error.Details, "completed")

	rec, env = send(t, h, http.MethodGet, path, "viewer", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, env.Meta["total"])
}
