package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCases(t *testing.T) {
	cases, err := parseCases(" 20x30, 50x10 ,", 777)
	require.NoError(t, err)
	require.Len(t, cases, 2)

	assert.Equal(t, 20, cases[0].Ops)
	assert.Equal(t, 30, cases[0].CycleTime)
	assert.Equal(t, "20x30", cases[0].Name())
	assert.Equal(t, int64(777+20*100+30), cases[0].InstanceSeed)

	// длительность операции не превышает такт
	assert.Equal(t, 10, cases[1].MaxTime)
	assert.Equal(t, int64(777+10_000+50*100+10), cases[1].InstanceSeed)

	for _, bad := range []string{"20", "ax5", "20x0", "1x10", "20x30x2"} {
		_, err := parseCases(bad, 1)
		assert.Error(t, err, bad)
	}
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"ga", "sa"}, splitCSV(" ga, ,sa,"))
	assert.Empty(t, splitCSV(""))
}

func TestJoinKinds(t *testing.T) {
	type k string
	assert.Equal(t, "a, b", joinKinds([]k{"a", "b"}))
}

func TestBindParamsDefaults(t *testing.T) {
	require.NoError(t, stationsCmd.ParseFlags([]string{"--ga_pop", "12", "--sa_neigh", "insert"}))
	p := stParams.Params()
	assert.Equal(t, 12, p.GA.Population)
	assert.EqualValues(t, "insert", p.SA.Neighborhood)
	assert.EqualValues(t, "insert", p.TS.Neighborhood)
	require.NoError(t, p.SA.Validate())
}
