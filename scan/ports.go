package scan

// DefaultPorts is scanned when no selection is given.
var DefaultPorts = []int{21, 22, 80, 443, 3306, 8000, 8080}

func DescribePort(port int) string {
	if s, ok := knownPorts[port]; ok {
		return s
	}

	return ""
}
