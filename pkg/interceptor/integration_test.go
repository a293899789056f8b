package interceptor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/methodlog/pkg/config"
	"github.com/arthur-debert/methodlog/pkg/registry"
	"github.com/arthur-debert/methodlog/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const integrationConfig = `
enabled = true

[[rules]]
pattern = "svc.order.*"
min-duration-ms = 100

[[rules]]
pattern = "svc.pay.Gateway.charge"
mask-sensitive = true

[[rules]]
pattern = "svc.report.Generator.generate"
max-result-size = 5
`

func loadIntegrationSetup(t *testing.T) (*Interceptor, *registry.Registry, *testutil.CaptureSink) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "methodlog.toml")
	require.NoError(t, os.WriteFile(path, []byte(integrationConfig), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	reg := registry.New(cfg.Defaults(), cfg.Rules)
	sink := testutil.NewCaptureSink()
	return New(reg, sink), reg, sink
}

func TestConfigDrivenInterception(t *testing.T) {
	ic, _, sink := loadIntegrationSetup(t)

	// Fast order call: below the 100ms threshold, invocation record only
	_, err := ic.Invoke(call("svc.order.Repo", "save", []interface{}{"order-1"}, "saved", nil))
	require.NoError(t, err)
	require.Len(t, sink.Infos(), 1)
	assert.Equal(t, ">>> Invoking svc.order.Repo.save with args: [order-1]", sink.Infos()[0])
	sink.Reset()

	// Payment call: masked on both sides
	_, err = ic.Invoke(call("svc.pay.Gateway", "charge", []interface{}{"4111"}, "receipt", nil))
	require.NoError(t, err)
	require.Len(t, sink.Infos(), 2)
	assert.Equal(t, ">>> Invoking svc.pay.Gateway.charge with args: [PROTECTED]", sink.Infos()[0])
	assert.Regexp(t, `Result: \[PROTECTED\]$`, sink.Infos()[1])
	sink.Reset()

	// Report call: result truncated to five characters
	_, err = ic.Invoke(call("svc.report.Generator", "generate", nil, "abcdefgh", nil))
	require.NoError(t, err)
	require.Len(t, sink.Infos(), 2)
	assert.Regexp(t, `Result: abcde\.\.\. \(truncated\)$`, sink.Infos()[1])
	sink.Reset()

	// Unmatched call: nothing at all
	_, err = ic.Invoke(call("svc.user.Directory", "lookup", nil, "u1", nil))
	require.NoError(t, err)
	assert.Empty(t, sink.Infos())
	assert.Empty(t, sink.Errors())
}

func TestConfigDrivenReload(t *testing.T) {
	ic, reg, sink := loadIntegrationSetup(t)

	_, err := ic.Invoke(call("svc.order.Repo", "save", nil, "ok", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, sink.Infos())
	sink.Reset()

	// An operator flips the global switch off and the config reloads
	off := config.Default()
	off.Enabled = false
	require.NoError(t, reg.ReloadChecked(off.Defaults(), off.Rules))

	_, err = ic.Invoke(call("svc.order.Repo", "save", nil, "ok", nil))
	require.NoError(t, err)
	assert.Empty(t, sink.Infos())
}
