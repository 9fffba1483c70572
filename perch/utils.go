package perch

import (
	"io"
)

// PipeUpload will create an upload that pipes written data to the provided
// callback. The callback is run in a separate goroutine and its result is
// awaited when the upload is closed.
func PipeUpload(fn func(upload io.Reader) error) Upload {
	// create pipe
	reader, writer := io.Pipe()

	// prepare upload
	upload := &pipeUpload{
		writer: writer,
		done:   make(chan struct{}),
	}

	// run callback
	go func() {
		upload.err = fn(reader)
		_ = reader.CloseWithError(upload.err)
		close(upload.done)
	}()

	return upload
}

type pipeUpload struct {
	writer *io.PipeWriter
	done   chan struct{}
	err    error
}

func (u *pipeUpload) Write(data []byte) (int, error) {
	return u.writer.Write(data)
}

func (u *pipeUpload) Close() error {
	// close writer
	err := u.writer.Close()
	if err != nil {
		return err
	}

	// await callback
	<-u.done

	return u.err
}
