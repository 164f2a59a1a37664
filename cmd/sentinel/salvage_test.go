package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseObjectCleanJSON(t *testing.T) {
	var out map[string]string
	err := ParseObject(`{"result": "TRUE", "summary": "ok"}`, &out)
	require.NoError(t, err)
	require.Equal(t, "TRUE", out["result"])
}

func TestParseObjectSurroundedByProse(t *testing.T) {
	text := "Here is my analysis:\n```json\n{\"result\": \"FALSE\"}\n```\nHope that helps!"
	var out map[string]string
	err := ParseObject(text, &out)
	require.NoError(t, err)
	require.Equal(t, "FALSE", out["result"])
}

func TestParseObjectRepairsMissingCommaBetweenStrings(t *testing.T) {
	text := "{\n  \"claim\": \"the earth is round\"\n  \"result\": \"TRUE\"\n}"
	var out map[string]string
	err := ParseObject(text, &out)
	require.NoError(t, err)
	require.Equal(t, "the earth is round", out["claim"])
	require.Equal(t, "TRUE", out["result"])
}

func TestParseObjectRepairsMissingCommaAfterNumber(t *testing.T) {
	text := "{\n  \"score\": 7.5\n  \"result\": \"TRUE\"\n}"
	var out map[string]interface{}
	err := ParseObject(text, &out)
	require.NoError(t, err)
	require.Equal(t, "TRUE", out["result"])
	require.Equal(t, 7.5, out["score"])
}

func TestParseObjectNoJSON(t *testing.T) {
	var out map[string]string
	err := ParseObject("there is no structured data here", &out)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrNoJSONFound)

	var pf *ParseFailure
	require.True(t, errors.As(err, &pf))
}

func TestParseObjectUnrepairable(t *testing.T) {
	var out map[string]string
	err := ParseObject(`{"claim": completely broken [}`, &out)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrJSONRepairFailed)
}

func TestParseArray(t *testing.T) {
	text := `Sure! Here are the claims: [{"claim": "a"}, {"claim": "b"}] as requested.`
	var out []Claim
	err := ParseArray(text, &out)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "a", out[0].Text)
}

func TestParseArrayNoBrackets(t *testing.T) {
	var out []Claim
	err := ParseArray("no claims found", &out)
	require.ErrorIs(t, err, ErrNoJSONFound)
}
