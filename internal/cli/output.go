package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case []Player:
		o.printPlayers(v)
	case CountResult:
		_, _ = fmt.Fprintf(o.w, "%d\n", v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Title          string `json:"title"`
	Race           string `json:"race"`
	Profession     string `json:"profession"`
	Experience     int    `json:"experience"`
	Level          int    `json:"level"`
	UntilNextLevel int    `json:"untilNextLevel"`
	Birthday       int64  `json:"birthday"`
	Banned         bool   `json:"banned"`
}

// CountResult is the bare number returned by the count endpoint
type CountResult int

// HealthResult response type
type HealthResult struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

func birthdayString(millis int64) string {
	return time.UnixMilli(millis).UTC().Format(time.DateOnly)
}

func (o *Output) printPlayer(p Player) {
	bannedStr := "no"
	if p.Banned {
		bannedStr = "yes"
	}
	_, _ = fmt.Fprintf(o.w, "Player: %s, %s (%d)\n", p.Name, p.Title, p.ID)
	_, _ = fmt.Fprintf(o.w, "Race: %s\n", p.Race)
	_, _ = fmt.Fprintf(o.w, "Profession: %s\n", p.Profession)
	_, _ = fmt.Fprintf(o.w, "Level: %d (%d xp, %d to next level)\n", p.Level, p.Experience, p.UntilNextLevel)
	_, _ = fmt.Fprintf(o.w, "Birthday: %s\n", birthdayString(p.Birthday))
	_, _ = fmt.Fprintf(o.w, "Banned: %s\n", bannedStr)
}

func (o *Output) printPlayers(players []Player) {
	if len(players) == 0 {
		_, _ = fmt.Fprintln(o.w, "No players")
		return
	}

	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tRACE\tPROFESSION\tLEVEL\tXP\tBIRTHDAY\tBANNED")
	for _, p := range players {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%s\t%t\n",
			p.ID, p.Name, p.Race, p.Profession, p.Level, p.Experience, birthdayString(p.Birthday), p.Banned)
	}
	_ = tw.Flush()
}

func (o *Output) printHealthResult(h HealthResult) {
	_, _ = fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	if h.Storage != "" {
		_, _ = fmt.Fprintf(o.w, "Storage: %s\n", h.Storage)
	}
}
