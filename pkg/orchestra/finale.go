package orchestra

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/srevinsaju/keyswap/v1/pkg/ui"
)

func (r *Run) Finale(logLevel logrus.Level) {
	r.Logger.Log(logLevel, ui.Grey(fmt.Sprintf("took %s", r.Elapsed().Round(time.Millisecond))))
}
