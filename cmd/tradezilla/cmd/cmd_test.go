package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradezilla/config"
	"github.com/rustyeddy/tradezilla/metrics"
)

// The commands share package-level flag state, so these tests run serially.

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// journalConfig writes a config keeping the journal in a temp directory.
func journalConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Store = config.StoreConfig{Driver: "file", Path: filepath.Join(dir, "data")}
	cfg.Log.Level = "error"
	cfg.Cron.Enabled = false

	path := filepath.Join(dir, "tradezilla.yaml")
	require.NoError(t, cfg.SaveToFile(path))
	return path
}

// loggedID pulls the trade id out of "✓ Logged trade <id>".
func loggedID(t *testing.T, out string) string {
	t.Helper()
	first := strings.SplitN(out, "\n", 2)[0]
	fields := strings.Fields(first)
	require.NotEmpty(t, fields)
	return fields[len(fields)-1]
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "tradezilla version "+version)
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")

	out, err := run(t, "config", "init", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created default configuration")

	out, err = run(t, "config", "validate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid")
	assert.Contains(t, out, "gemini")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("store:\n  driver: mongo\n"), 0600))
	_, err = run(t, "config", "validate", "-f", bad)
	assert.ErrorContains(t, err, "store.driver")
}

func TestStatsOnSeedJournal(t *testing.T) {
	cfg := journalConfig(t)

	out, err := run(t, "--config", cfg, "stats", "--json")
	require.NoError(t, err)

	var p metrics.Performance
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, 3, p.TotalTrades)
	assert.InDelta(t, 270.0, p.TotalPnL, 1e-9)
	assert.Equal(t, 0, p.CurrentWinStreak, "the latest seed trade is a loss")

	out, err = run(t, "--config", cfg, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "All Time")

	_, err = run(t, "--config", cfg, "stats", "--days", "-1")
	assert.Error(t, err)
}

func TestTradeLifecycle(t *testing.T) {
	cfg := journalConfig(t)

	out, err := run(t, "--config", cfg, "trade", "add",
		"--symbol", "solusdt", "--direction", "short",
		"--entry", "150", "--exit", "140", "--size", "10",
		"--date", "2024-05-13", "--notes", "fade")
	require.NoError(t, err)
	require.Contains(t, out, "Logged trade")
	tradeID := loggedID(t, out)

	out, err = run(t, "--config", cfg, "trade", "show", tradeID)
	require.NoError(t, err)
	assert.Contains(t, out, "SOLUSDT")
	assert.Contains(t, out, "+$100.00")

	out, err = run(t, "--config", cfg, "trade", "edit", tradeID, "--exit", "155")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated trade "+tradeID)
	assert.Contains(t, out, "-$50.00")
	assert.Contains(t, out, "fade", "untouched fields are kept")

	out, err = run(t, "--config", cfg, "trade", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "4 trades")

	out, err = run(t, "--config", cfg, "trade", "list", "-n", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "2 trades")
	assert.Contains(t, out, "SOLUSDT", "newest first")

	_, err = run(t, "--config", cfg, "trade", "rm", tradeID, "--yes")
	require.NoError(t, err)

	_, err = run(t, "--config", cfg, "trade", "show", tradeID)
	assert.Error(t, err)
}

func TestTradeAddInvalid(t *testing.T) {
	cfg := journalConfig(t)

	_, err := run(t, "--config", cfg, "trade", "add", "--entry", "100", "--exit", "110", "--size", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Symbol is required")

	_, err = run(t, "--config", cfg, "trade", "add", "--symbol", "BTC", "--entry", "abc")
	assert.ErrorContains(t, err, "--entry")

	for _, v := range []string{"0", "11"} {
		_, err = run(t, "--config", cfg, "trade", "add", "--symbol", "BTC", "--entry", "100", "--exit", "110", "--size", "1", "--emotion", v)
		assert.ErrorContains(t, err, "--emotion", v)
	}

	out, err := run(t, "--config", cfg, "trade", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "3 trades", "nothing was saved")
}

func TestExportImportCSV(t *testing.T) {
	src := journalConfig(t)
	csvPath := filepath.Join(t.TempDir(), "ledger.csv")

	out, err := run(t, "--config", src, "export", "csv", "-o", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 3 trades")

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "id,date,symbol"))

	// the target journal already holds the seed ids
	dst := journalConfig(t)
	_, err = run(t, "--config", dst, "import", csvPath)
	assert.Error(t, err)

	// strip ids so every row gets a fresh one
	var rows []string
	for i, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if i > 0 {
			line = line[strings.Index(line, ","):]
		}
		rows = append(rows, line)
	}
	fresh := filepath.Join(t.TempDir(), "fresh.csv")
	require.NoError(t, os.WriteFile(fresh, []byte(strings.Join(rows, "\n")+"\n"), 0600))

	out, err = run(t, "--config", dst, "import", fresh)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 trades")

	out, err = run(t, "--config", dst, "trade", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "6 trades")
}

func TestExportOrg(t *testing.T) {
	cfg := journalConfig(t)

	out, err := run(t, "--config", cfg, "export", "org")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count("\n"+out, "\n** "), "one heading per trade")

	_, err = run(t, "--config", cfg, "export", "pdf")
	assert.Error(t, err)
}

func TestProfile(t *testing.T) {
	cfg := journalConfig(t)

	out, err := run(t, "--config", cfg, "profile")
	require.NoError(t, err)
	assert.Equal(t, "John Doe\n", out)

	_, err = run(t, "--config", cfg, "profile", "  Jane Trader ")
	require.NoError(t, err)

	out, err = run(t, "--config", cfg, "profile")
	require.NoError(t, err)
	assert.Equal(t, "Jane Trader\n", out)

	_, err = run(t, "--config", cfg, "profile", " ")
	assert.Error(t, err)
}

func TestCalendarAndReport(t *testing.T) {
	cfg := journalConfig(t)

	out, err := run(t, "--config", cfg, "calendar", "--month", "2024-06", "--offset", "-1")
	require.NoError(t, err)
	assert.Contains(t, out, "May 2024")

	_, err = run(t, "--config", cfg, "calendar", "--month", "May")
	assert.Error(t, err)

	orgPath := filepath.Join(t.TempDir(), "report.org")
	out, err = run(t, "--config", cfg, "report", "--org", orgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Momentum Differential")

	data, err := os.ReadFile(orgPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "* PERFORMANCE: Last 30 Days")
	assert.Contains(t, string(data), "* PERFORMANCE: Last 90 Days")
}

func TestDailyRejectsBadRange(t *testing.T) {
	cfg := journalConfig(t)

	_, err := run(t, "--config", cfg, "daily", "--days", "0")
	assert.Error(t, err)

	_, err = run(t, "--config", cfg, "daily", "--days", "3")
	assert.NoError(t, err)
}
