package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgsKeepsAllowedPairs(t *testing.T) {
	args := []string{"-a", "localhost:5001", "-x", "junk", "-d", "test.db"}
	got := FilterArgs(args, []string{"-a", "-d"})
	assert.Equal(t, []string{"-a", "localhost:5001", "-d", "test.db"}, got)
}

func TestFilterArgsEqualsForm(t *testing.T) {
	args := []string{"-a=localhost:5001", "--config=conf.json", "-x=skip"}
	got := FilterArgs(args, []string{"-a", "--config"})
	assert.Equal(t, []string{"-a=localhost:5001", "--config=conf.json"}, got)
}

func TestFilterArgsBoolFlagWithoutValue(t *testing.T) {
	args := []string{"-v", "-a", "addr"}
	got := FilterArgs(args, []string{"-v", "-a"})
	assert.Equal(t, []string{"-v", "-a", "addr"}, got)
}

func TestFilterArgsEmpty(t *testing.T) {
	assert.Empty(t, FilterArgs(nil, []string{"-a"}))
	assert.Empty(t, FilterArgs([]string{"-a", "v"}, nil))
}
