// Package main provides the laminar command line tool.
package main

import (
	"fmt"
	"os"

	"github.com/laminar-la/laminar/backend/webgpu"
	"github.com/laminar-la/laminar/linalg"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("laminar %s\n", version)
			return
		case "backends":
			listBackends()
			return
		}
	}

	fmt.Println("laminar - triangular solvers, LU, and preconditioners for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version     Show version")
	fmt.Println("  backends    List compute backends and the WebGPU adapter")
}

func listBackends() {
	gpu, err := webgpu.New()
	if err == nil {
		defer gpu.Release()
	}

	fmt.Println("Registered backends:")
	for _, b := range linalg.Backends() {
		fmt.Println("  " + b)
	}

	if err != nil {
		fmt.Printf("\nWebGPU unavailable: %v\n", err)
		return
	}
	info := gpu.AdapterInfo()
	fmt.Printf("\nWebGPU adapter: %s (%s)\n", info.Device, info.Vendor)
}
