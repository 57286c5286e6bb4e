package scan

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePorts turns a selection such as "22,80,443,8080-8090" into a port
// list. Order is kept and duplicates are not removed. Only syntax is checked
// here; range checks belong to the scanner.
func ParsePorts(selection string) ([]int, error) {
	if strings.TrimSpace(selection) == "" {
		return append([]int{}, DefaultPorts...), nil
	}
	ports := []int{}
	for _, r := range strings.Split(selection, ",") {
		r = strings.TrimSpace(r)
		if r == "" {
			return nil, fmt.Errorf("invalid port selection: empty segment in '%s'", selection)
		}
		if strings.Contains(r, "-") && !strings.HasPrefix(r, "-") {
			parts := strings.Split(r, "-")
			if len(parts) != 2 {
				return nil, fmt.Errorf("invalid port selection segment: '%s'", r)
			}

			p1, err := strconv.Atoi(strings.TrimSpace(parts[0]))
			if err != nil {
				return nil, fmt.Errorf("invalid port number: '%s'", parts[0])
			}

			p2, err := strconv.Atoi(strings.TrimSpace(parts[1]))
			if err != nil {
				return nil, fmt.Errorf("invalid port number: '%s'", parts[1])
			}

			if p1 > p2 {
				return nil, fmt.Errorf("invalid port range: %d-%d", p1, p2)
			}

			if p2-p1 >= MaxPort {
				return nil, fmt.Errorf("invalid port range: %d-%d", p1, p2)
			}

			for i := p1; i <= p2; i++ {
				ports = append(ports, i)
			}
			continue
		}

		port, err := strconv.Atoi(r)
		if err != nil {
			return nil, fmt.Errorf("invalid port number: '%s'", r)
		}
		ports = append(ports, port)
	}
	return ports, nil
}
