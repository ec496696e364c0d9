package domain

import m "dupes.dev/pkg/dupes/internal/model"

// progressStep is the milestone granularity in percent.
const progressStep = 10

// progressTracker turns a processed-file count into 10% milestones. Each
// milestone is produced once and in increasing order.
type progressTracker struct {
	total     int
	processed int
	next      int
}

func newProgressTracker(total int) *progressTracker {
	return &progressTracker{total: total, next: progressStep}
}

// advance records one more processed file and returns the milestones crossed.
func (p *progressTracker) advance() []m.Progress {
	if p.total <= 0 {
		return nil
	}

	p.processed++
	percent := p.processed * 100 / p.total

	var crossed []m.Progress

	for p.next <= 100 && percent >= p.next {
		crossed = append(crossed, m.Progress{
			Percent:   p.next,
			Processed: p.processed,
			Total:     p.total,
		})
		p.next += progressStep
	}

	return crossed
}
