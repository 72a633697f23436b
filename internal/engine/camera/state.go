package camera

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/gizmo/internal/logger"
	"github.com/Faultbox/gizmo/pkg/math"
)

// StateSize is the size in bytes of a saved camera state.
const StateSize = 92

// ErrTruncatedState is returned when a state file is shorter than StateSize.
var ErrTruncatedState = errors.New("truncated camera state")

// stateRecord is the on-disk layout, little-endian with no header:
// the rotation matrix row by row, the translation padded to four floats,
// then the field of view in degrees and the clip distances.
type stateRecord struct {
	Rot  [16]float32
	Tran [4]float32
	FOV  float32
	Near float32
	Far  float32
}

// WriteState writes the rotation, translation and projection parameters.
func (c *ArcballCamera) WriteState(w io.Writer) error {
	rec := stateRecord{
		Rot:  c.rot,
		Tran: [4]float32{c.tran.X, c.tran.Y, c.tran.Z, 0},
		FOV:  c.fov,
		Near: c.near,
		Far:  c.far,
	}
	if err := binary.Write(w, binary.LittleEndian, &rec); err != nil {
		return fmt.Errorf("write camera state: %w", err)
	}
	return nil
}

// ReadState replaces the rotation, translation and projection parameters
// with those read from r. On error the camera is unchanged.
func (c *ArcballCamera) ReadState(r io.Reader) error {
	var rec stateRecord
	if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return ErrTruncatedState
		}
		return fmt.Errorf("read camera state: %w", err)
	}
	c.rot = rec.Rot
	c.tran = math.Vec3{X: rec.Tran[0], Y: rec.Tran[1], Z: rec.Tran[2]}
	c.tranOld = c.tran
	c.fov, c.near, c.far = rec.FOV, rec.Near, rec.Far
	c.persp = math.Perspective(math.DegToRad(c.fov), c.aspect, c.near, c.far)
	c.update()
	return nil
}

// Save writes the camera state to path.
func (c *ArcballCamera) Save(path string) error {
	var buf bytes.Buffer
	if err := c.WriteState(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("save camera state: %w", err)
	}
	logger.Named("camera").Debug("saved state",
		zap.String("path", path),
		logger.Vec3("tran", c.tran),
		zap.Float32("fov", c.fov))
	return nil
}

// Read loads the camera state from path. A missing file is reported with
// an error satisfying errors.Is(err, fs.ErrNotExist); a short file with
// ErrTruncatedState. In both cases the camera is unchanged.
func (c *ArcballCamera) Read(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read camera state: %w", err)
	}
	if len(data) < StateSize {
		return fmt.Errorf("%s: %w (%d of %d bytes)", path, ErrTruncatedState, len(data), StateSize)
	}
	if err := c.ReadState(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	logger.Named("camera").Debug("restored state",
		zap.String("path", path),
		logger.Vec3("tran", c.tran),
		zap.Float32("fov", c.fov))
	return nil
}
