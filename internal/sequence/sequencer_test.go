package sequence_test

import (
	"errors"
	"fmt"
	"strings"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // Dot import is idiomatic for Ginkgo DSL
	. "github.com/onsi/gomega"    //nolint:revive // Dot import is idiomatic for Gomega matchers
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/joe/frame-folders/internal/sequence"
	"github.com/joe/frame-folders/pkg/filesystem"
)

// addFrames creates folder (if needed) and frames 1..count inside it.
func addFrames(fs *filesystem.MockFileSystem, folder string, count int) {
	fs.AddDir("/" + folder)
	for n := 1; n <= count; n++ {
		fs.AddFile(sequence.BuildPath(folder, n), []byte("jpg"))
	}
}

func record(fs *filesystem.MockFileSystem) string {
	data, err := fs.GetFile(sequence.DefaultRecordPath)
	if err != nil {
		return ""
	}

	return string(data)
}

var _ = Describe("Sequencer", func() {
	var (
		fs   *filesystem.MockFileSystem
		seq  *sequence.Sequencer
		logs *observer.ObservedLogs
		opts []sequence.Option
	)

	BeforeEach(func() {
		fs = filesystem.NewMockFileSystem()

		var core zapcore.Core
		core, logs = observer.New(zap.DebugLevel)
		opts = []sequence.Option{sequence.WithLogger(zap.New(core))}
	})

	start := func(rec string) {
		if rec != "" {
			fs.AddFile(sequence.DefaultRecordPath, []byte(rec))
		}
		seq = sequence.New(fs, opts...)
		if rec != "" {
			Expect(seq.Initialize()).To(Succeed())
		}
	}

	Describe("Initialize", func() {
		It("starts at the volume root when there is no record", func() {
			seq = sequence.New(fs, opts...)

			Expect(seq.Initialize()).NotTo(Succeed())
			Expect(seq.State()).To(Equal(sequence.State{}))
			Expect(seq.CurrentPath()).To(Equal("/000000.jpg"))
		})

		It("loads folder and number from the record", func() {
			start("folder03,17")

			Expect(seq.State()).To(Equal(sequence.State{Folder: "folder03", Number: 17}))
			Expect(seq.CurrentPath()).To(Equal("/folder03/000017.jpg"))
		})

		It("resets to the initial position on a malformed record", func() {
			fs.AddFile(sequence.DefaultRecordPath, []byte("folder03;17"))
			seq = sequence.New(fs, opts...)

			err := seq.Initialize()
			Expect(err).To(MatchError(sequence.ErrMalformedRecord))
			Expect(seq.State()).To(Equal(sequence.State{}))
		})

		It("keeps the current position when the record cannot be opened", func() {
			start("A,4")
			fs.FailOn(filesystem.OpOpen, sequence.DefaultRecordPath, errors.New("card busy"))

			Expect(seq.Initialize()).NotTo(Succeed())
			Expect(seq.State()).To(Equal(sequence.State{Folder: "A", Number: 4}))
		})

		It("reads the record from a configured path", func() {
			fs.AddFile("/state/seq.txt", []byte("B,2"))
			seq = sequence.New(fs, append(opts, sequence.WithRecordPath("/state/seq.txt"))...)

			Expect(seq.Initialize()).To(Succeed())
			Expect(seq.RecordPath()).To(Equal("/state/seq.txt"))
			Expect(seq.State().Folder).To(Equal("B"))
		})
	})

	Describe("Advance", func() {
		BeforeEach(func() {
			addFrames(fs, "A", 3)
			addFrames(fs, "B", 2)
			addFrames(fs, "C", 1)
		})

		It("moves within the folder while frames exist", func() {
			start("A,1")

			outcome, err := seq.Advance(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome).To(Equal(sequence.OutcomeAdvanced))
			Expect(seq.CurrentPath()).To(Equal("/A/000002.jpg"))

			outcome, err = seq.Advance(0)
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome).To(Equal(sequence.OutcomeAdvanced))
			Expect(seq.CurrentPath()).To(Equal("/A/000002.jpg"))
		})

		It("does not write the record when staying in the folder", func() {
			start("A,1")

			_, err := seq.Advance(2)
			Expect(err).NotTo(HaveOccurred())
			Expect(record(fs)).To(Equal("A,1"))
		})

		It("rolls over to the next folder when the frame is missing", func() {
			start("B,2")

			outcome, err := seq.Advance(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome).To(Equal(sequence.OutcomeRolledOver))
			Expect(seq.State()).To(Equal(sequence.State{Folder: "C", Number: 1}))
			Expect(seq.CurrentPath()).To(Equal("/C/000001.jpg"))
			Expect(record(fs)).To(Equal("C,1"))
		})

		It("wraps around to the first folder after the last one", func() {
			start("C,1")

			outcome, err := seq.Advance(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome).To(Equal(sequence.OutcomeRolledOver))
			Expect(seq.State().Folder).To(Equal("A"))
			Expect(record(fs)).To(Equal("A,1"))
		})

		It("skips past the rest of the folder when delta overshoots", func() {
			start("A,1")

			outcome, err := seq.Advance(10)
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome).To(Equal(sequence.OutcomeRolledOver))
			Expect(seq.State()).To(Equal(sequence.State{Folder: "B", Number: 1}))
		})

		It("rejects a negative delta and leaves the position alone", func() {
			start("A,2")

			_, err := seq.Advance(-1)
			Expect(err).To(MatchError(sequence.ErrNegativeDelta))
			Expect(seq.State()).To(Equal(sequence.State{Folder: "A", Number: 2}))
		})

		It("starts a fresh volume at the first folder", func() {
			seq = sequence.New(fs, opts...)
			Expect(seq.Initialize()).NotTo(Succeed())

			outcome, err := seq.Advance(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome).To(Equal(sequence.OutcomeRolledOver))
			Expect(seq.State()).To(Equal(sequence.State{Folder: "A", Number: 1}))
			Expect(record(fs)).To(Equal("A,1"))
		})

		It("plays frames stored at the volume root before any folder is chosen", func() {
			fs.AddFile("/000001.jpg", []byte("jpg"))
			seq = sequence.New(fs, opts...)

			outcome, err := seq.Advance(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome).To(Equal(sequence.OutcomeAdvanced))
			Expect(seq.CurrentPath()).To(Equal("/000001.jpg"))
		})

		It("rolls over when the number no longer fits the path format", func() {
			fs.AddFile("/A/1000000.jpg", []byte("jpg"))
			start(fmt.Sprintf("A,%d", sequence.MaxFileNumber))

			outcome, err := seq.Advance(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome).To(Equal(sequence.OutcomeRolledOver))
			Expect(seq.State()).To(Equal(sequence.State{Folder: "B", Number: 1}))
			Expect(logs.FilterMessage("File number overflow, moving to next folder").Len()).To(Equal(1))
		})

		It("treats a failed existence check as a missing frame", func() {
			start("A,1")
			fs.FailOn(filesystem.OpExists, "/A/000002.jpg", errors.New("read error"))

			outcome, err := seq.Advance(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome).To(Equal(sequence.OutcomeRolledOver))
			Expect(seq.State().Folder).To(Equal("B"))
		})
	})

	Describe("Rollover", func() {
		It("keeps the folder and reports exhaustion when no folder has a first frame", func() {
			fs.AddDir("/A")
			fs.AddFile("/B/000002.jpg", []byte("jpg"))
			fs.AddDir("/C")
			start("B,5")

			result, err := seq.Rollover()
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Outcome).To(Equal(sequence.OutcomeExhausted))
			Expect(result.Wrapped).To(BeTrue())
			Expect(seq.State()).To(Equal(sequence.State{Folder: "B", Number: 1}))
			Expect(record(fs)).To(Equal("B,5"))
			Expect(logs.FilterMessage("Suitable folder not found").Len()).To(Equal(1))
		})

		It("reselects the only folder when it is the sole candidate", func() {
			addFrames(fs, "A", 2)
			start("A,2")

			outcome, err := seq.Advance(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome).To(Equal(sequence.OutcomeRolledOver))
			Expect(seq.State()).To(Equal(sequence.State{Folder: "A", Number: 1}))
		})

		It("searches from the first entry when the current folder is gone", func() {
			addFrames(fs, "A", 1)
			addFrames(fs, "B", 1)
			start("removed,9")

			result, err := seq.Rollover()
			Expect(err).NotTo(HaveOccurred())
			Expect(result.CurrentFound).To(BeFalse())
			Expect(result.Folder).To(Equal("A"))
		})

		It("inspects at most two passes over the listing", func() {
			for i := range 5 {
				fs.AddDir(fmt.Sprintf("/empty%d", i))
			}
			fs.AddFile("/notes.txt", []byte("x"))
			start("missing,3")

			listed := 7 // five folders, notes.txt and the record
			result, err := seq.Rollover()
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Outcome).To(Equal(sequence.OutcomeExhausted))
			Expect(fs.EntriesVisited()).To(BeNumerically("<=", 2*listed))
			Expect(result.Inspected).To(Equal(fs.EntriesVisited()))
		})

		It("visits the whole listing twice when the current folder exists", func() {
			for i := range 4 {
				fs.AddDir(fmt.Sprintf("/empty%d", i))
			}
			start("empty2,3")

			listed := 5 // four folders and the record
			_, err := seq.Rollover()
			Expect(err).NotTo(HaveOccurred())
			Expect(fs.EntriesVisited()).To(BeNumerically("<=", 2*listed))
		})

		It("only selects folders allowed by the filter", func() {
			addFrames(fs, "A", 1)
			addFrames(fs, "B", 1)
			addFrames(fs, "trip-paris", 1)
			filter, err := sequence.NewGlobFilter("trip-*")
			Expect(err).NotTo(HaveOccurred())
			opts = append(opts, sequence.WithFilter(filter))
			start("A,1")

			result, err := seq.Rollover()
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Folder).To(Equal("trip-paris"))
		})

		It("skips folders whose names do not fit a frame path", func() {
			long := strings.Repeat("x", sequence.MaxFolderNameLen+1)
			addFrames(fs, long, 1)
			addFrames(fs, "ok", 1)
			start("ok,1")

			result, err := seq.Rollover()
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Folder).To(Equal("ok"))
			Expect(result.Wrapped).To(BeTrue())
		})

		It("ignores plain files in the volume root", func() {
			fs.AddFile("/000001.jpg", []byte("jpg"))
			addFrames(fs, "A", 1)
			start("A,1")

			result, err := seq.Rollover()
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Folder).To(Equal("A"))
		})

		It("keeps the selection in memory when saving fails", func() {
			addFrames(fs, "A", 1)
			addFrames(fs, "B", 1)
			start("A,1")
			fs.FailOn(filesystem.OpWrite, sequence.DefaultRecordPath, errors.New("write protected"))

			outcome, err := seq.Advance(1)
			Expect(err).To(HaveOccurred())
			Expect(outcome).To(Equal(sequence.OutcomeRolledOver))
			Expect(seq.State()).To(Equal(sequence.State{Folder: "B", Number: 1}))
			Expect(record(fs)).To(Equal("A,1"))
		})

		It("reports exhaustion when the volume root cannot be listed", func() {
			addFrames(fs, "A", 1)
			start("A,3")
			fs.FailOn(filesystem.OpOpenDir, "/", errors.New("no medium"))

			outcome, err := seq.Advance(1)
			Expect(err).To(HaveOccurred())
			Expect(outcome).To(Equal(sequence.OutcomeExhausted))
			Expect(seq.State()).To(Equal(sequence.State{Folder: "A", Number: 1}))
		})

		It("skips a candidate whose first frame cannot be checked", func() {
			addFrames(fs, "A", 1)
			addFrames(fs, "B", 1)
			addFrames(fs, "C", 1)
			start("A,1")
			fs.FailOn(filesystem.OpExists, "/B/000001.jpg", errors.New("read error"))

			result, err := seq.Rollover()
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Folder).To(Equal("C"))
		})
	})

	Describe("Save", func() {
		It("checkpoints the current frame", func() {
			addFrames(fs, "A", 3)
			start("A,1")

			_, err := seq.Advance(2)
			Expect(err).NotTo(HaveOccurred())
			Expect(seq.Save()).To(Succeed())
			Expect(record(fs)).To(Equal("A,3"))
		})
	})
})

var _ = Describe("Outcome", func() {
	It("has readable names", func() {
		Expect(sequence.OutcomeAdvanced.String()).To(Equal("advanced"))
		Expect(sequence.OutcomeRolledOver.String()).To(Equal("rolled-over"))
		Expect(sequence.OutcomeExhausted.String()).To(Equal("exhausted"))
		Expect(sequence.Outcome(42).String()).To(Equal("unknown"))
	})
})
