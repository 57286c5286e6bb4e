package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePorts(t *testing.T) {
	tests := []struct {
		input string
		want  []int
	}{
		{input: "80", want: []int{80}},
		{input: "80,81,443", want: []int{80, 81, 443}},
		{input: "443,80,443", want: []int{443, 80, 443}},
		{input: " 22 , 8000-8002 ", want: []int{22, 8000, 8001, 8002}},
		{input: "8080-8080", want: []int{8080}},
		{input: "70000", want: []int{70000}},
		{input: "-5", want: []int{-5}},
		{input: "", want: DefaultPorts},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			ports, err := ParsePorts(test.input)
			require.NoError(t, err)
			assert.Equal(t, test.want, ports)
		})
	}
}

func TestParsePortsSyntaxErrors(t *testing.T) {
	for _, input := range []string{"abc", "22,", ",22", "10-1", "1-2-3", "a-5", "5-b", "1-999999"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParsePorts(input)
			assert.Error(t, err)
		})
	}
}

func TestParsePortsDefaultIsCopy(t *testing.T) {
	ports, err := ParsePorts("")
	require.NoError(t, err)
	ports[0] = 1
	assert.Equal(t, 21, DefaultPorts[0])
}

func TestParseTarget(t *testing.T) {
	ip, err := ParseTarget("93.184.216.34")
	require.NoError(t, err)
	assert.Equal(t, "93.184.216.34", ip.String())
	assert.Len(t, ip, 4)

	for _, bad := range []string{"", "example.com", "256.1.1.1", "::1", "::ffff:1.2.3.4", "1.2.3"} {
		_, err := ParseTarget(bad)
		var targetErr *InvalidTargetError
		assert.ErrorAs(t, err, &targetErr, bad)
	}
}

func TestDescribePort(t *testing.T) {
	assert.Equal(t, "ssh", DescribePort(22))
	assert.Equal(t, "https", DescribePort(443))
	assert.Equal(t, "", DescribePort(1))
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "80/tcp OPEN", Result{Port: 80, State: PortOpen}.String())
	assert.Equal(t, "81/tcp CLOSED_OR_FILTERED", Result{Port: 81}.String())
}

func TestDefaultPortsAreDescribed(t *testing.T) {
	for _, port := range DefaultPorts {
		assert.NotEmpty(t, DescribePort(port), "port %d", port)
	}
	assert.Equal(t, "mysql", DescribePort(3306))
	assert.Equal(t, "http-alt", DescribePort(8080))
}
