package mask

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/brushwork/image-compositor/internal/utils"
	"github.com/brushwork/image-compositor/pkg/codec"
)

// DebugObserver writes every combine stage to disk as PNG and logs the
// pixel tally. Stage files are numbered in emission order so a directory
// listing reads like the pipeline.
type DebugObserver struct {
	dir string
	seq int
}

// NewDebugObserver creates an observer writing into dir. The directory
// is created on first use.
func NewDebugObserver(dir string) *DebugObserver {
	return &DebugObserver{dir: dir}
}

// OnStage writes img as stage_<seq>_<name>.png. Write failures are
// logged, never propagated; instrumentation must not fail a combine.
func (o *DebugObserver) OnStage(name string, img image.Image) {
	if err := utils.EnsureDir(o.dir); err != nil {
		logrus.Errorf("Failed to create debug directory %s: %v", o.dir, err)
		return
	}

	path := filepath.Join(o.dir, fmt.Sprintf("stage_%02d_%s.png", o.seq, name))
	o.seq++
	if err := codec.Save(img, path); err != nil {
		logrus.Errorf("Failed to write debug stage %s: %v", name, err)
		return
	}
	logrus.Debugf("Wrote mask stage %s", path)
}

// OnStats logs the alpha class counts of the combined image.
func (o *DebugObserver) OnStats(stats PixelStats) {
	logrus.WithFields(logrus.Fields{
		"opaque":      stats.Opaque,
		"partial":     stats.Partial,
		"transparent": stats.Transparent,
	}).Debug("Mask combine pixel stats")
}
