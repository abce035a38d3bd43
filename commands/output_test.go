package commands

import (
	"bytes"
	"testing"

	"github.com/activecm/mdl/pkg/mdl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var outputRecords = []mdl.Record{{
	Date:        "2020-01-01",
	Domain:      "comma, in.com",
	IP:          "1.2.3.4",
	Reverse:     "-",
	Description: "trojan",
	Registrant:  "-",
	ASN:         "AS1",
	Inactive:    "0",
	Country:     "US",
}}

func TestShowRecordsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, showRecordsCSV(&buf, outputRecords, ","))
	assert.Equal(t,
		"Date,Domain,IP,Reverse,Description,Registrant,ASN,Inactive,Country\n"+
			"2020-01-01,\"comma, in.com\",1.2.3.4,-,trojan,-,AS1,0,US\n",
		buf.String())

	buf.Reset()
	require.NoError(t, showRecordsCSV(&buf, outputRecords, "|"))
	assert.Contains(t, buf.String(), "2020-01-01|comma, in.com|1.2.3.4|")
}

func TestShowRecordsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, showRecordsJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())

	buf.Reset()
	require.NoError(t, showRecordsJSON(&buf, outputRecords))
	assert.Contains(t, buf.String(), `"domain":"comma, in.com"`)
	assert.Contains(t, buf.String(), `"asn":"AS1"`)
}
