package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/glassray/glassray/pkg/geometry"
	"github.com/glassray/glassray/pkg/logger"
	"github.com/glassray/glassray/pkg/material"
)

// plyProperty is one property definition from a PLY header
type plyProperty struct {
	name     string
	typ      string
	isList   bool
	listType string
	dataType string
}

// plyHeader holds the parsed PLY header
type plyHeader struct {
	format      string // "ascii" or "binary_little_endian"
	vertexCount int
	faceCount   int
	vertexProps []plyProperty

	hasNormals   bool
	hasTexCoords bool
}

// MeshData is the geometry loaded from a PLY file
type MeshData struct {
	Vertices   []geometry.Vertex
	Triangles  []geometry.Triangle
	HasNormals bool
}

// LoadPLY loads a PLY mesh file (ascii or binary little-endian) into
// vertex and triangle arrays. Polygons with more than three vertices are
// fan-triangulated. When the file carries no normals, callers should invoke
// CalcSmoothVertexNormals on the constructed mesh.
func LoadPLY(filename string) (*MeshData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var data *MeshData
	switch header.format {
	case "ascii":
		data, err = readASCII(reader, header)
	case "binary_little_endian":
		data, err = readBinaryLE(reader, header)
	default:
		return nil, fmt.Errorf("unsupported PLY format %q", header.format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read PLY data: %w", err)
	}

	logger.Debug("loaded PLY mesh",
		zap.String("file", filename),
		zap.Int("vertices", len(data.Vertices)),
		zap.Int("triangles", len(data.Triangles)),
		zap.Bool("normals", data.HasNormals))

	return data, nil
}

func parsePLYHeader(reader *bufio.Reader) (*plyHeader, error) {
	magic, err := reader.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "ply" {
		return nil, fmt.Errorf("not a PLY file")
	}

	header := &plyHeader{}
	currentElement := ""

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("unexpected end of header: %w", err)
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "format":
			if len(fields) < 2 {
				return nil, fmt.Errorf("malformed format line")
			}
			header.format = fields[1]
		case "comment":
			// Ignored
		case "element":
			if len(fields) < 3 {
				return nil, fmt.Errorf("malformed element line")
			}
			count, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, fmt.Errorf("bad element count: %w", err)
			}
			currentElement = fields[1]
			switch currentElement {
			case "vertex":
				header.vertexCount = count
			case "face":
				header.faceCount = count
			}
		case "property":
			if currentElement != "vertex" {
				continue
			}
			prop := plyProperty{}
			if fields[1] == "list" {
				prop.isList = true
				prop.listType = fields[2]
				prop.dataType = fields[3]
				prop.name = fields[4]
			} else {
				prop.typ = fields[1]
				prop.name = fields[2]
			}
			header.vertexProps = append(header.vertexProps, prop)
			switch prop.name {
			case "nx":
				header.hasNormals = true
			case "u", "s":
				header.hasTexCoords = true
			}
		case "end_header":
			return header, nil
		}
	}
}

// vertexFromValues assembles a vertex from named property values
func vertexFromValues(header *plyHeader, values []float64) geometry.Vertex {
	var v geometry.Vertex
	for i, prop := range header.vertexProps {
		if i >= len(values) {
			break
		}
		val := values[i]
		switch prop.name {
		case "x":
			v.Position.X = val
		case "y":
			v.Position.Y = val
		case "z":
			v.Position.Z = val
		case "nx":
			v.Normal.X = val
		case "ny":
			v.Normal.Y = val
		case "nz":
			v.Normal.Z = val
		case "u", "s":
			v.UV.X = val
		case "v", "t":
			v.UV.Y = val
		}
	}
	return v
}

func appendFan(tris []geometry.Triangle, indices []int, vertexCount int) ([]geometry.Triangle, error) {
	for _, idx := range indices {
		if idx < 0 || idx >= vertexCount {
			return nil, fmt.Errorf("face index %d out of bounds (%d vertices)", idx, vertexCount)
		}
	}
	for i := 1; i+1 < len(indices); i++ {
		tris = append(tris, geometry.Triangle{V0: indices[0], V1: indices[i], V2: indices[i+1]})
	}
	return tris, nil
}

func readASCII(reader *bufio.Reader, header *plyHeader) (*MeshData, error) {
	data := &MeshData{
		Vertices:   make([]geometry.Vertex, 0, header.vertexCount),
		HasNormals: header.hasNormals,
	}

	for i := 0; i < header.vertexCount; i++ {
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		fields := strings.Fields(line)
		values := make([]float64, len(fields))
		for j, f := range fields {
			values[j], err = strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("bad vertex value %q: %w", f, err)
			}
		}
		data.Vertices = append(data.Vertices, vertexFromValues(header, values))
	}

	for i := 0; i < header.faceCount; i++ {
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			return nil, fmt.Errorf("empty face line")
		}
		count, err := strconv.Atoi(fields[0])
		if err != nil || len(fields) < count+1 {
			return nil, fmt.Errorf("malformed face line %q", strings.TrimSpace(line))
		}
		indices := make([]int, count)
		for j := 0; j < count; j++ {
			indices[j], err = strconv.Atoi(fields[j+1])
			if err != nil {
				return nil, fmt.Errorf("bad face index: %w", err)
			}
		}
		data.Triangles, err = appendFan(data.Triangles, indices, len(data.Vertices))
		if err != nil {
			return nil, err
		}
	}

	return data, nil
}

func readBinaryLE(reader *bufio.Reader, header *plyHeader) (*MeshData, error) {
	data := &MeshData{
		Vertices:   make([]geometry.Vertex, 0, header.vertexCount),
		HasNormals: header.hasNormals,
	}

	for i := 0; i < header.vertexCount; i++ {
		values := make([]float64, len(header.vertexProps))
		for j, prop := range header.vertexProps {
			val, err := readBinaryValue(reader, prop.typ)
			if err != nil {
				return nil, fmt.Errorf("reading vertex %d: %w", i, err)
			}
			values[j] = val
		}
		data.Vertices = append(data.Vertices, vertexFromValues(header, values))
	}

	for i := 0; i < header.faceCount; i++ {
		// Face elements are assumed to be a single vertex index list
		countVal, err := readBinaryValue(reader, "uchar")
		if err != nil {
			return nil, fmt.Errorf("reading face %d: %w", i, err)
		}
		count := int(countVal)
		indices := make([]int, count)
		for j := 0; j < count; j++ {
			idxVal, err := readBinaryValue(reader, "int")
			if err != nil {
				return nil, fmt.Errorf("reading face %d index %d: %w", i, j, err)
			}
			indices[j] = int(idxVal)
		}
		data.Triangles, err = appendFan(data.Triangles, indices, len(data.Vertices))
		if err != nil {
			return nil, err
		}
	}

	return data, nil
}

func readBinaryValue(reader io.Reader, typ string) (float64, error) {
	switch typ {
	case "float", "float32":
		var v uint32
		if err := binary.Read(reader, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		return float64(math.Float32frombits(v)), nil
	case "double", "float64":
		var v uint64
		if err := binary.Read(reader, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		return math.Float64frombits(v), nil
	case "uchar", "uint8":
		var v uint8
		if err := binary.Read(reader, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		return float64(v), nil
	case "char", "int8":
		var v int8
		if err := binary.Read(reader, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		return float64(v), nil
	case "ushort", "uint16":
		var v uint16
		if err := binary.Read(reader, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		return float64(v), nil
	case "short", "int16":
		var v int16
		if err := binary.Read(reader, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		return float64(v), nil
	case "uint", "uint32":
		var v uint32
		if err := binary.Read(reader, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		return float64(v), nil
	case "int", "int32":
		var v int32
		if err := binary.Read(reader, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		return float64(v), nil
	default:
		return 0, fmt.Errorf("unsupported PLY property type %q", typ)
	}
}

// BuildMesh constructs a triangle mesh from loaded PLY data, computing
// smooth vertex normals when the file carried none
func (d *MeshData) BuildMesh(mat material.Material, name string, smoothed bool) *geometry.TriangleMesh {
	mesh := geometry.NewTriangleMesh(d.Vertices, d.Triangles, mat, name, smoothed)
	if !d.HasNormals {
		mesh.CalcSmoothVertexNormals()
	}
	return mesh
}
