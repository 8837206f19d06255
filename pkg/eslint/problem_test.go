package eslint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/eslintls/pkg/eslint"
)

func TestDecodeReport(t *testing.T) {
	t.Parallel()

	data := []byte(`[{
		"filePath": "/work/a.js",
		"messages": [
			{"ruleId": "semi", "severity": 2, "message": "Missing semicolon.", "line": 1, "column": 10,
			 "endLine": 1, "endColumn": 11, "fix": {"range": [9, 9], "text": ";"}},
			{"ruleId": null, "severity": 2, "message": "Parsing error", "line": 3, "column": 1}
		],
		"errorCount": 2,
		"warningCount": 0
	}]`)

	report, err := eslint.DecodeReport(data)
	require.NoError(t, err)

	problems := report.Problems()
	require.Len(t, problems, 2)

	assert.Equal(t, "semi", problems[0].RuleID)
	require.NotNil(t, problems[0].Fix)
	assert.Equal(t, [2]int{9, 9}, problems[0].Fix.Range)
	assert.True(t, problems[0].HasFix())

	assert.Empty(t, problems[1].RuleID)
	assert.Nil(t, problems[1].EndLine)
	assert.False(t, problems[1].HasFix())
}

func TestDecodeReport_Invalid(t *testing.T) {
	t.Parallel()

	_, err := eslint.DecodeReport([]byte("not json"))
	assert.Error(t, err)
}

func TestReport_ProblemsEmpty(t *testing.T) {
	t.Parallel()

	var nilReport *eslint.Report
	assert.Nil(t, nilReport.Problems())
	assert.Nil(t, (&eslint.Report{}).Problems())
}

func TestMessageOf(t *testing.T) {
	t.Parallel()

	msg, ok := eslint.MessageOf(&eslint.LintError{Message: "boom"})
	assert.True(t, ok)
	assert.Equal(t, "boom", msg)

	_, ok = eslint.MessageOf(&eslint.LintError{})
	assert.False(t, ok)

	_, ok = eslint.MessageOf(nil)
	assert.False(t, ok)
}

func TestTemplateOf(t *testing.T) {
	t.Parallel()

	err := &eslint.LintError{Message: "x", MessageTemplate: eslint.NoConfigTemplate}
	assert.Equal(t, eslint.NoConfigTemplate, eslint.TemplateOf(err))
	assert.Empty(t, eslint.TemplateOf(assert.AnError))
}

func TestURIRoundTrip(t *testing.T) {
	t.Parallel()

	uri := eslint.URIFromPath("/work/src/a b.js")
	assert.Equal(t, "file:///work/src/a%20b.js", uri)

	path, err := eslint.PathFromURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "/work/src/a b.js", path)
}

func TestPathFromURI_UnsupportedScheme(t *testing.T) {
	t.Parallel()

	_, err := eslint.PathFromURI("untitled:Untitled-1")
	assert.Error(t, err)
}
