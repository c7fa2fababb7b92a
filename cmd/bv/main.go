// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Command bv drives a confertus.Tree from a text fixture (spec §6):
// the first line is a decimal bit count N, the next N lines are the
// 0/1 bits pushed onto an empty vector, and every line after that is
// one of the five mutation/query commands. rank and select results
// are written to the result file, one decimal integer per line, in
// the order the commands were received.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/fkarg/confertus"
)

func main() {
	log.SetFlags(log.Lmicroseconds)

	if len(os.Args) != 3 {
		log.Fatalf("usage: %s <input-fixture> <result-file>", os.Args[0])
	}
	inPath, outPath := os.Args[1], os.Args[2]

	if err := run(inPath, outPath); err != nil {
		log.Fatalf("bv: %v", err)
	}
}

func run(inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create result file: %w", err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	defer w.Flush()

	tree := confertus.New()
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !scanner.Scan() {
		return fmt.Errorf("read bit count: %w", scanner.Err())
	}
	n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return fmt.Errorf("parse bit count: %w", err)
	}

	for i := 0; i < n; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("read bit %d: %w", i, scanner.Err())
		}
		bit, err := parseBit(scanner.Text())
		if err != nil {
			return fmt.Errorf("parse bit %d: %w", i, err)
		}
		tree.Push(bit)
	}
	log.Printf("seeded %d bits", n)

	lineNo := n + 1
	count := 0
	for scanner.Scan() {
		lineNo++
		if err := dispatch(tree, scanner.Text(), w); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read commands: %w", err)
	}
	log.Printf("executed %d commands", count)
	return nil
}

func dispatch(tree *confertus.Tree, line string, w *bufio.Writer) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "insert":
		idx, bit, err := parseIndexBit(fields)
		if err != nil {
			return err
		}
		return tree.Insert(idx, bit)
	case "delete":
		idx, err := parseIndex(fields)
		if err != nil {
			return err
		}
		return tree.Delete(idx)
	case "flip":
		idx, err := parseIndex(fields)
		if err != nil {
			return err
		}
		return tree.Flip(idx)
	case "rank":
		bit, idx, err := parseBitIndex(fields)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, tree.Rank(bit, idx))
		return err
	case "select":
		bit, n, err := parseBitIndex(fields)
		if err != nil {
			return err
		}
		pos, err := tree.Select(bit, n)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, pos)
		return err
	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
}

func parseBit(s string) (bool, error) {
	switch strings.TrimSpace(s) {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, fmt.Errorf("invalid bit %q", s)
	}
}

func parseIndex(fields []string) (int, error) {
	if len(fields) != 2 {
		return 0, fmt.Errorf("expected 1 argument, got %d", len(fields)-1)
	}
	return strconv.Atoi(fields[1])
}

func parseIndexBit(fields []string) (idx int, bit bool, err error) {
	if len(fields) != 3 {
		return 0, false, fmt.Errorf("expected 2 arguments, got %d", len(fields)-1)
	}
	idx, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, false, err
	}
	bit, err = parseBit(fields[2])
	return idx, bit, err
}

func parseBitIndex(fields []string) (bit bool, idx int, err error) {
	if len(fields) != 3 {
		return false, 0, fmt.Errorf("expected 2 arguments, got %d", len(fields)-1)
	}
	bit, err = parseBit(fields[1])
	if err != nil {
		return false, 0, err
	}
	idx, err = strconv.Atoi(fields[2])
	return bit, idx, err
}
