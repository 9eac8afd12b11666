package tools_test

import (
	"testing"

	"github.com/lookbusy1344/scriptcore/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findIssue(issues []*tools.LintIssue, code string) *tools.LintIssue {
	for _, i := range issues {
		if i.Code == code {
			return i
		}
	}
	return nil
}

func TestLintFlagsUndefinedLabel(t *testing.T) {
	issues := tools.Lint("j:\"nowhere\"\n")

	issue := findIssue(issues, "UNDEF_LABEL")
	require.NotNil(t, issue)
	assert.Equal(t, tools.LintError, issue.Level)
}

func TestLintFlagsUnusedLabel(t *testing.T) {
	issues := tools.Lint(";dead\np:1\n")

	issue := findIssue(issues, "UNUSED_LABEL")
	require.NotNil(t, issue)
	assert.Equal(t, tools.LintWarning, issue.Level)
}

func TestLintFlagsUnreachableCodeAfterUnconditionalJump(t *testing.T) {
	issues := tools.Lint("j:\"skip\"\np:1\n;skip\n")

	issue := findIssue(issues, "UNREACHABLE_CODE")
	require.NotNil(t, issue)
	assert.Equal(t, 1, issue.Instr)
}

func TestLintDoesNotFlagCodeAfterJumpWhenNextLineIsALabel(t *testing.T) {
	issues := tools.Lint("j:\"here\"\n;here\np:1\n")

	assert.Nil(t, findIssue(issues, "UNREACHABLE_CODE"))
}

func TestLintCleanProgramHasNoIssues(t *testing.T) {
	issues := tools.Lint("j:\"here\"\n;here\np:1\n")

	assert.Empty(t, issues)
}

func TestLintReportsParseErrorAsIssue(t *testing.T) {
	issues := tools.Lint("p:\n")

	require.Len(t, issues, 1)
	assert.Equal(t, "PARSE_ERROR", issues[0].Code)
}
