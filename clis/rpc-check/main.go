package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/google/uuid"
)

const defaultBase = "http://127.0.0.1:3000"

// Demonstration client for the foreign-call resolver: pokes say_hello and
// resolve_foreign_call the way the proving framework would.
func main() {
	base := os.Getenv("RPC_BASE")
	if base == "" {
		base = defaultBase
	}

	resolveCmd := flag.NewFlagSet("resolve", flag.ExitOnError)
	resolveFunction := resolveCmd.String("function", "getSqrt", "Foreign call function name")
	resolveInput := resolveCmd.String("input", "", "Operand string (required)")
	resolveSecond := resolveCmd.String("input2", "", "Second operand (getSum/getDiff)")

	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "hello":
		if err := call(base, "say_hello", []interface{}{1, 2, 3}); err != nil {
			log.Fatal(err)
		}

	case "resolve":
		resolveCmd.Parse(os.Args[2:])
		if *resolveInput == "" {
			fmt.Fprintln(os.Stderr, "Missing required flag: -input")
			resolveCmd.Usage()
			os.Exit(1)
		}

		inputs := []string{*resolveInput}
		if *resolveSecond != "" {
			inputs = append(inputs, *resolveSecond)
		}
		requests := []map[string]interface{}{{
			"session_id":   1,
			"function":     *resolveFunction,
			"inputs":       inputs,
			"root_path":    "/tmp/x",
			"package_name": "demo",
		}}
		inner, err := json.Marshal(requests)
		if err != nil {
			log.Fatal(err)
		}
		// The resolver expects the request batch double-encoded: a JSON
		// string carried as the single positional param.
		if err := call(base, "resolve_foreign_call", []interface{}{string(inner)}); err != nil {
			log.Fatal(err)
		}

	default:
		usage()
		log.Fatalf("Unknown command: %s\n\n", os.Args[1])
	}
}

func usage() {
	fmt.Println(`Usage: rpc-check <command> [flags]

Commands:
  hello                                          call say_hello
  resolve -function <name> -input <operand>      call resolve_foreign_call
          [-input2 <operand>]

Flags:
  -function  Foreign call function (default getSqrt)
  -input     First operand, zero-padded strings accepted
  -input2    Second operand for getSum/getDiff

Environment:
  RPC_BASE   override default http://127.0.0.1:3000
`)
}

func call(base, method string, params []interface{}) error {
	frame := map[string]interface{}{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
		"id":      uuid.NewString(),
	}
	body, err := json.Marshal(frame)
	if err != nil {
		return err
	}

	resp, err := http.Post(base, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	fmt.Printf("%s -> %s\n", method, responseBody)
	return nil
}
