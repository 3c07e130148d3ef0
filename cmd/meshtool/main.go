// meshtool is a CLI utility for inspecting and preparing glTF models for the
// mesh loader.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Faultbox/meshloader/internal/config"
	"github.com/Faultbox/meshloader/internal/engine/mesh"
	"github.com/Faultbox/meshloader/pkg/gltf"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "inspect", "info":
		cmdInspect(args)
	case "split":
		cmdSplit(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshtool - glTF mesh loader utility

Usage:
  meshtool <command> [options]

Commands:
  inspect [-exclude name] [-companion file] [-texcoords] <doc.gltf>
                                     Resolve every primitive and print its byte ranges
  split [-companion file] <in.glb|in.gltf> <out.gltf>
                                     Rewrite a model so its buffer is an external companion file
  config [path]                      Write the default viewer config

Examples:
  meshtool inspect assets/bird/bird.gltf
  meshtool inspect -exclude "" -texcoords assets/bird/bird.gltf
  meshtool split bird.glb assets/bird/bird.gltf`)
}

func cmdInspect(args []string) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	exclude := fs.String("exclude", "Cube.001", "Mesh name to skip (empty disables)")
	companion := fs.String("companion", gltf.DefaultCompanionName, "Binary buffer file next to the document")
	texCoords := fs.Bool("texcoords", false, "Also resolve TEXCOORD_0")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool inspect [options] <doc.gltf>")
		os.Exit(1)
	}

	p, err := mesh.Prepare(fs.Arg(0), *exclude, mesh.Options{
		Companion: *companion,
		TexCoords: *texCoords,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(formatPrepared(p))
}

// formatPrepared renders one block per primitive with every resolved span.
func formatPrepared(p *mesh.Prepared) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Document:   %s\n", p.Path)
	fmt.Fprintf(&b, "Buffer:     %d bytes\n", p.BufferLen())
	fmt.Fprintf(&b, "Primitives: %d (%d meshes excluded)\n", len(p.Primitives), p.Excluded)

	for _, prim := range p.Primitives {
		fmt.Fprintf(&b, "\nmesh %d %q primitive %d\n", prim.Mesh, prim.MeshName, prim.Index)
		fmt.Fprintf(&b, "  color     %.3g %.3g %.3g %.3g\n", prim.Color[0], prim.Color[1], prim.Color[2], prim.Color[3])
		writeSpan(&b, "indices", prim.Indices)
		writeSpan(&b, "position", prim.Position)
		writeSpan(&b, "normal", prim.Normal)
		if prim.TexCoord != nil {
			writeSpan(&b, "texcoord", *prim.TexCoord)
		}
	}
	return b.String()
}

func writeSpan(b *strings.Builder, name string, s gltf.Span) {
	fmt.Fprintf(b, "  %-9s accessor %d: %d x %s %s, bytes [%d,%d)\n",
		name, s.Accessor, s.Count, s.Shape, s.ComponentType, s.Offset, s.End())
}

func cmdSplit(args []string) {
	fs := flag.NewFlagSet("split", flag.ExitOnError)
	companion := fs.String("companion", gltf.DefaultCompanionName, "Name of the companion buffer file to write")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool split [options] <in.glb|in.gltf> <out.gltf>")
		os.Exit(1)
	}

	n, err := splitModel(fs.Arg(0), fs.Arg(1), *companion)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s and %s (%d primitives resolve)\n",
		fs.Arg(1), gltf.CompanionPath(fs.Arg(1), *companion), n)
}

func cmdConfig(args []string) {
	path := config.DefaultConfigPath()
	if len(args) > 0 {
		path = args[0]
	}
	if err := config.Default().SaveTo(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", path)
}
