package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"scout-route-service/internal/boundary"
	"scout-route-service/internal/solve"
)

// solvecli runs the route-planning core against a JSON instance file,
// without any of the HTTP/storage machinery cmd/server wires up. It exists
// for local experimentation and scripted batch runs against instance
// files produced by a course-design tool.
func main() {
	inputF := flag.String("input", "input.json", "Path to the solve.Input JSON instance")
	outputF := flag.String("output", "", "Path to write the result to. Default: stdout")
	format := flag.String("format", "json", "Output format: json, or wire (emits [count, route_length, finish_time_centiminutes, route...])")
	flag.Parse()

	raw, err := os.ReadFile(*inputF)
	if err != nil {
		log.Fatalf("solvecli: read %q: %s", *inputF, err)
	}

	var in solve.Input
	if err := json.Unmarshal(raw, &in); err != nil {
		log.Fatalf("solvecli: parse %q: %s", *inputF, err)
	}

	res, err := solve.Solve(in)
	if err != nil {
		log.Fatalf("solvecli: solve: %s", err)
	}

	var out []byte
	switch *format {
	case "json":
		out, err = json.MarshalIndent(res, "", "\t")
		if err != nil {
			log.Fatalf("solvecli: marshal result: %s", err)
		}
	case "wire":
		wire := boundary.EncodeResult(res)
		out, err = json.Marshal(wire)
		if err != nil {
			log.Fatalf("solvecli: marshal wire result: %s", err)
		}
	default:
		log.Fatalf("solvecli: unsupported -format %q, want json or wire", *format)
	}

	if *outputF == "" {
		fmt.Println(string(out))
		return
	}
	if err := os.WriteFile(*outputF, out, 0644); err != nil {
		log.Fatalf("solvecli: write %q: %s", *outputF, err)
	}
}
