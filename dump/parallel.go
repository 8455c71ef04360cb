package dump

import (
	"context"
	"runtime"
	"sync"

	"github.com/YLivay/hexi/document"
)

// DefaultBatchSize is the number of lines a worker formats per job.
const DefaultBatchSize = 256

type formattedLine struct {
	offset int
	hex    string
}

type batchJob struct {
	start, end int
	result     chan<- []formattedLine
}

// ParallelScanner yields the same lines as Scanner, in the same order, but
// formats them ahead of the consumer on several goroutines. Batches are
// formatted in any order and put back in order on the consuming side.
type ParallelScanner struct {
	doc *document.Document

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	closed  bool
	pending chan (<-chan []formattedLine)

	batch []formattedLine
	pos   int
	line  int
	err   error
}

// NewParallelScanner starts formatting doc on workers goroutines, batchSize
// lines at a time. Non-positive values select GOMAXPROCS workers and
// DefaultBatchSize. Close must be called to release the goroutines.
func NewParallelScanner(ctx context.Context, doc *document.Document, workers, batchSize int) *ParallelScanner {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &ParallelScanner{
		doc:     doc,
		ctx:     ctx,
		cancel:  cancel,
		pending: make(chan (<-chan []formattedLine), workers*2),
		line:    -1,
	}

	jobs := make(chan batchJob, workers)

	s.wg.Add(1)
	go s.produce(jobs, batchSize)

	for i := 0; i < workers; i++ {
		s.wg.Add(1)
		go s.work(jobs)
	}

	return s
}

// produce queues a result channel for every batch in line order and hands
// the batch to the workers.
func (s *ParallelScanner) produce(jobs chan<- batchJob, batchSize int) {
	defer s.wg.Done()
	defer close(s.pending)
	defer close(jobs)

	lineCount := s.doc.LineCount()
	for start := 0; start < lineCount; start += min(batchSize, lineCount-start) {
		result := make(chan []formattedLine, 1)
		job := batchJob{start: start, end: start + min(batchSize, lineCount-start), result: result}

		select {
		case s.pending <- result:
		case <-s.ctx.Done():
			return
		}

		select {
		case jobs <- job:
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *ParallelScanner) work(jobs <-chan batchJob) {
	defer s.wg.Done()

	layout := s.doc.Layout()
	for job := range jobs {
		lines := make([]formattedLine, 0, job.end-job.start)
		for i := job.start; i < job.end; i++ {
			bytes, err := s.doc.LineBytes(i)
			if err != nil {
				break
			}
			lines = append(lines, formattedLine{offset: s.doc.Offset(i), hex: layout.Format(bytes)})
		}
		job.result <- lines
	}
}

// Scan advances to the next line, waiting for its batch if needed. It
// returns false at the end of the document or once the context is done.
func (s *ParallelScanner) Scan() bool {
	if s.closed || s.err != nil {
		s.batch = nil
		return false
	}

	s.pos++
	for s.pos >= len(s.batch) {
		if !s.nextBatch() {
			s.batch = nil
			return false
		}
	}

	s.line++
	return true
}

func (s *ParallelScanner) nextBatch() bool {
	var result <-chan []formattedLine
	select {
	case r, ok := <-s.pending:
		if !ok {
			s.setErr()
			return false
		}
		result = r
	case <-s.ctx.Done():
		s.setErr()
		return false
	}

	select {
	case batch := <-result:
		s.batch = batch
		s.pos = 0
		return true
	case <-s.ctx.Done():
		s.setErr()
		return false
	}
}

// setErr records why the scan stopped early. Closing the scanner is not an
// error.
func (s *ParallelScanner) setErr() {
	if s.closed {
		return
	}
	s.err = s.ctx.Err()
}

// Line returns the index of the current line.
func (s *ParallelScanner) Line() int {
	return s.line
}

func (s *ParallelScanner) current() (formattedLine, bool) {
	if s.pos >= len(s.batch) {
		return formattedLine{}, false
	}
	return s.batch[s.pos], true
}

// Offset returns the byte offset of the current line, or 0 when there is
// none.
func (s *ParallelScanner) Offset() int {
	line, _ := s.current()
	return line.offset
}

// Hex returns the current line without its offset prefix.
func (s *ParallelScanner) Hex() string {
	line, _ := s.current()
	return line.hex
}

// Text returns the current line as printed, or "" when there is none.
func (s *ParallelScanner) Text() string {
	if _, ok := s.current(); !ok {
		return ""
	}
	return FormatLine(s.Offset(), s.Hex())
}

// Err returns the context error if the scan was cut short by cancellation.
func (s *ParallelScanner) Err() error {
	return s.err
}

// Close stops the workers and waits for them to exit.
func (s *ParallelScanner) Close() error {
	s.closed = true
	s.cancel()
	s.wg.Wait()
	return nil
}
