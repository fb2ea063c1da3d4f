package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/san-kum/springcurve/internal/geom"
	"github.com/san-kum/springcurve/internal/scene"
)

type FrameData struct {
	Index    int           `json:"index"`
	Pointer  [2]float64    `json:"pointer"`
	Controls [4][2]float64 `json:"controls"`
	Targets  [2][2]float64 `json:"targets"`
	Polyline [][2]float64  `json:"polyline"`
	Tangents []TangentData `json:"tangents"`
	Params   ParamsData    `json:"params"`
}

type ParamsData struct {
	Stiffness       float64 `json:"stiffness"`
	Damping         float64 `json:"damping"`
	PointOffset     float64 `json:"point_offset"`
	NumSamples      int     `json:"num_samples"`
	TangentInterval int     `json:"tangent_interval"`
	TangentLength   float64 `json:"tangent_length"`
}

type TangentData struct {
	Index     int        `json:"index"`
	T         float64    `json:"t"`
	Anchor    [2]float64 `json:"anchor"`
	Direction [2]float64 `json:"direction"`
	Length    float64    `json:"length"`
}

func xy(p geom.Point) [2]float64 { return [2]float64{p.X, p.Y} }

func NewFrameData(f scene.Frame, p scene.Params) FrameData {
	data := FrameData{
		Index:    f.Index,
		Pointer:  xy(f.Pointer),
		Polyline: make([][2]float64, len(f.Polyline)),
		Tangents: make([]TangentData, len(f.Tangents)),
		Params:   ParamsData(p),
	}
	for i, c := range f.Controls {
		data.Controls[i] = xy(c)
	}
	for i, t := range f.Targets {
		data.Targets[i] = xy(t)
	}
	for i, pt := range f.Polyline {
		data.Polyline[i] = xy(pt)
	}
	for i, m := range f.Tangents {
		data.Tangents[i] = TangentData{
			Index:     m.Index,
			T:         m.T,
			Anchor:    xy(m.Anchor),
			Direction: xy(m.Direction),
			Length:    m.Length,
		}
	}
	return data
}

func WriteJSON(w io.Writer, f scene.Frame, p scene.Params) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewFrameData(f, p))
}

func ExportJSON(path string, f scene.Frame, p scene.Params) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export json: %w", err)
	}
	defer file.Close()

	return WriteJSON(file, f, p)
}

func ExportSVG(path string, f scene.Frame, width, height float64, style Style) error {
	if err := os.WriteFile(path, []byte(FrameToSVG(f, width, height, style)), 0644); err != nil {
		return fmt.Errorf("export svg: %w", err)
	}
	return nil
}
