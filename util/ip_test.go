package util

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

type parseSubnetsTestCase struct {
	nets    []string
	out     []string
	wantErr bool
	msg     string
}

func TestParseSubnets(t *testing.T) {
	testCases := []parseSubnetsTestCase{
		{[]string{"10.0.0.0/8"}, []string{"10.0.0.0/8"}, false, "CIDR"},
		{[]string{"127.0.0.1"}, []string{"127.0.0.1/32"}, false, "bare IPv4"},
		{[]string{"::1"}, []string{"::1/128"}, false, "bare IPv6"},
		{[]string{"10.1.2.3/8", "::1"}, []string{"10.0.0.0/8", "::1/128"}, false, "mixed"},
		{[]string{"not-a-subnet"}, nil, true, "garbage"},
	}

	for _, testCase := range testCases {
		output, err := ParseSubnets(testCase.nets)
		if testCase.wantErr {
			assert.NotNil(t, err, testCase.msg)
			continue
		}
		assert.Nil(t, err, testCase.msg)
		var got []string
		for _, block := range output {
			got = append(got, block.String())
		}
		assert.Equal(t, testCase.out, got, testCase.msg)
	}
}

func TestContainsIP(t *testing.T) {
	subnets, err := ParseSubnets([]string{"127.0.0.0/8", "192.168.0.0/16", "::1"})
	assert.Nil(t, err)

	assert.True(t, ContainsIP(subnets, net.ParseIP("127.0.0.1")))
	assert.True(t, ContainsIP(subnets, net.ParseIP("192.168.44.3")))
	assert.True(t, ContainsIP(subnets, net.ParseIP("::1")))
	assert.False(t, ContainsIP(subnets, net.ParseIP("8.8.8.8")))
	assert.False(t, ContainsIP(nil, net.ParseIP("127.0.0.1")))
}

func TestIsIP(t *testing.T) {
	testIP := "1.1.1.1"
	notIP := "a.b.c.d"
	assert.True(t, IsIP(testIP))
	assert.False(t, IsIP(notIP))
	assert.True(t, IsIP("2001:4860:4860::8888"))
}
