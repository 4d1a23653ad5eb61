package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	ms, err := parseDate("2100-02-03")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2100, 2, 3, 0, 0, 0, 0, time.UTC).UnixMilli(), ms)

	ms, err = parseDate("2100-02-03T04:05:06+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2100, 2, 3, 2, 5, 6, 0, time.UTC).UnixMilli(), ms)

	_, err = parseDate("03/02/2100")
	assert.Error(t, err)
}

func TestPlayerFieldsBodyOnlyHasChangedFlags(t *testing.T) {
	var f playerFields
	cmd := &cobra.Command{Use: "x"}
	f.register(cmd.Flags())
	require.NoError(t, cmd.Flags().Parse([]string{"--name", "Eomer", "--banned=false", "--birthday", "2050-05-05"}))

	body, err := f.body(cmd.Flags())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"name":     "Eomer",
		"banned":   false,
		"birthday": time.Date(2050, 5, 5, 0, 0, 0, 0, time.UTC).UnixMilli(),
	}, body)
}

func TestCriteriaFlagsValues(t *testing.T) {
	var f criteriaFlags
	cmd := &cobra.Command{Use: "x"}
	f.register(cmd.Flags())
	require.NoError(t, cmd.Flags().Parse([]string{
		"--race", "ELF",
		"--min-level", "0",
		"--max-experience", "500",
		"--after", "2001-01-01",
		"--before", "2002-01-01",
		"--banned",
	}))

	v, err := f.values(cmd.Flags())
	require.NoError(t, err)
	assert.Equal(t, "ELF", v.Get("race"))
	assert.Equal(t, "0", v.Get("minLevel"))
	assert.Equal(t, "500", v.Get("maxExperience"))
	assert.Equal(t, "978307200000", v.Get("after"))
	assert.Equal(t, "1009843200000", v.Get("before"))
	assert.Equal(t, "true", v.Get("banned"))
	assert.False(t, v.Has("name"))
	assert.False(t, v.Has("maxLevel"))
}

func TestTextOutput(t *testing.T) {
	var buf bytes.Buffer
	out := NewOutput("text", &buf)

	out.Print(Player{
		ID: 3, Name: "Treebeard", Title: "Eldest", Race: "GIANT", Profession: "DRUID",
		Experience: 500, Level: 2, UntilNextLevel: 100,
		Birthday: time.Date(2222, 2, 2, 0, 0, 0, 0, time.UTC).UnixMilli(),
	})
	assert.Contains(t, buf.String(), "Player: Treebeard, Eldest (3)")
	assert.Contains(t, buf.String(), "Level: 2 (500 xp, 100 to next level)")
	assert.Contains(t, buf.String(), "Birthday: 2222-02-02")
	assert.Contains(t, buf.String(), "Banned: no")

	buf.Reset()
	out.Print([]Player{})
	assert.Equal(t, "No players\n", buf.String())

	buf.Reset()
	out.Print(CountResult(12))
	assert.Equal(t, "12\n", buf.String())
}

func TestClientReturnsRequestError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set(requestIDHeader, "req-42")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":"PLAYER_NOT_FOUND","message":"Player not found"}}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, time.Second).Get(context.Background(), "/rest/players/9", nil, nil)

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusNotFound, reqErr.Status)
	assert.Equal(t, "PLAYER_NOT_FOUND", reqErr.API.Code)
	assert.Equal(t, "Player not found (PLAYER_NOT_FOUND) [request req-42]", err.Error())
}

func TestClientNonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, time.Second).Get(context.Background(), "/", nil, nil)
	require.Error(t, err)
	assert.Equal(t, "bad gateway (Bad Gateway)", err.Error())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("ROSTER_SERVER", "http://roster:9000")
	t.Setenv("ROSTER_TIMEOUT", "5s")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://roster:9000", c.ServerURL)
	assert.Equal(t, 5*time.Second, c.Timeout)
	assert.Equal(t, "text", c.Output)
}
