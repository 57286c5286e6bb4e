package main

import (
	"bytes"
	"encoding/csv"
	"flag"
	"fmt"
	"go/format"
	"io"
	"net/http"
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"
)

const registryURL = "https://www.iana.org/assignments/service-names-port-numbers/service-names-port-numbers.csv"

func main() {

	output := flag.String("o", "./scan/known.go", "file to write the port table to")
	flag.Parse()

	resp, err := http.Get(registryURL)
	if err != nil {
		log.Fatalf("Failed to fetch registry: %s", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Fatalf("Unexpected status fetching registry: %s", resp.Status)
	}

	buf := &bytes.Buffer{}
	buf.WriteString(`package scan

// data from ` + registryURL + `
var knownPorts = map[int]string{`)

	lastPort := ""
	count := 0
	reader := csv.NewReader(resp.Body)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("Failed to read registry: %s", err)
		}

		if len(record) < 3 || record[2] != "tcp" || record[0] == "" || record[1] == "" || record[1] == lastPort {
			continue
		}

		// ranges such as "6000-6063" are skipped
		if _, err := strconv.Atoi(record[1]); err != nil {
			continue
		}

		lastPort = record[1]
		count++
		fmt.Fprintf(buf, "\n\t%s: %q,", record[1], record[0])
	}

	buf.WriteString("\n}\n")

	src, err := format.Source(buf.Bytes())
	if err != nil {
		log.Fatalf("Failed to format generated table: %s", err)
	}

	if err := os.WriteFile(*output, src, 0644); err != nil {
		log.Fatalf("Failed to write %s: %s", *output, err)
	}

	log.Infof("Wrote %d ports to %s", count, *output)
}
