package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	akttesting "github.com/akount/akount/testing"
)

func TestServeSkipsStartupInTestMode(t *testing.T) {
	akttesting.EnsureTestMode()
	assert.Equal(t, 0, serve())
}

func TestRunMoneyRequiresOneArgument(t *testing.T) {
	assert.Equal(t, 2, runMoney("format", nil))
	assert.Equal(t, 2, runMoney("format", []string{"1", "2"}))
	assert.Equal(t, 2, runMoney("parse", []string{"-bogus"}))
}

func TestRunMoneyFormats(t *testing.T) {
	assert.Equal(t, 0, runMoney("format", []string{"-currency", "USD", "-style", "signed", "1999"}))
	assert.Equal(t, 10, runMoney("parse", []string{"abc"}))
}

func TestRunJobsRequiresAction(t *testing.T) {
	assert.Equal(t, 2, runJobs(nil))
}
