package filesystem_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/frame-folders/pkg/filesystem"
)

func collectEntries(cursor filesystem.DirCursor) []filesystem.DirEntry {
	var entries []filesystem.DirEntry
	for {
		entry, ok := cursor.Next()
		if !ok {
			return entries
		}
		entries = append(entries, entry)
	}
}

func TestMockFileSystem_CreateAndOpen(t *testing.T) {
	fs := filesystem.NewMockFileSystem()

	content := []byte("test content")
	file, err := fs.Create("/test.txt")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err = file.Write(content)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	_ = file.Close()

	file, err = fs.Open("/test.txt")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if string(data) != string(content) {
		t.Errorf("Expected %q, got %q", content, data)
	}
}

func TestMockFileSystem_CreateRequiresParent(t *testing.T) {
	g := NewWithT(t)
	fs := filesystem.NewMockFileSystem()

	_, err := fs.Create("/missing/file.txt")
	g.Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
}

func TestMockFileSystem_Exists(t *testing.T) {
	g := NewWithT(t)
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/a/000001.jpg", []byte("x"))

	exists, err := fs.Exists("/a/000001.jpg")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(exists).To(BeTrue())

	exists, err = fs.Exists("/a")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(exists).To(BeTrue())

	exists, err = fs.Exists("/a/000002.jpg")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(exists).To(BeFalse())
}

func TestMockFileSystem_OpenDirKeepsInsertionOrder(t *testing.T) {
	g := NewWithT(t)
	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/C")
	fs.AddDir("/A")
	fs.AddFile("/state.txt", []byte("A,1"))
	fs.AddDir("/B")
	fs.AddFile("/A/000001.jpg", nil)

	cursor, err := fs.OpenDir("/")
	g.Expect(err).ShouldNot(HaveOccurred())
	defer cursor.Close()

	g.Expect(collectEntries(cursor)).To(Equal([]filesystem.DirEntry{
		{Name: "C", IsDir: true},
		{Name: "A", IsDir: true},
		{Name: "state.txt", IsDir: false},
		{Name: "B", IsDir: true},
	}))
	g.Expect(cursor.Err()).ShouldNot(HaveOccurred())
	g.Expect(fs.EntriesVisited()).To(Equal(4))
}

func TestMockFileSystem_RewindRestartsListing(t *testing.T) {
	g := NewWithT(t)
	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/A")
	fs.AddDir("/B")

	cursor, err := fs.OpenDir("/")
	g.Expect(err).ShouldNot(HaveOccurred())

	first, ok := cursor.Next()
	g.Expect(ok).To(BeTrue())
	g.Expect(first.Name).To(Equal("A"))

	fs.AddDir("/C")
	g.Expect(cursor.Rewind()).To(Succeed())
	g.Expect(collectEntries(cursor)).To(HaveLen(3))
}

func TestMockFileSystem_FailOn(t *testing.T) {
	g := NewWithT(t)
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/folder.txt", []byte("A,3"))

	boom := errors.New("input/output error")
	fs.FailOn(filesystem.OpOpen, "/folder.txt", boom)
	fs.FailOn(filesystem.OpWrite, "/folder.txt", boom)
	fs.FailOn(filesystem.OpOpenDir, "/", boom)

	_, err := fs.Open("/folder.txt")
	g.Expect(err).To(MatchError(boom))

	err = fs.WriteFileAtomic("/folder.txt", []byte("B,1"))
	g.Expect(err).To(MatchError(boom))

	_, err = fs.OpenDir("/")
	g.Expect(err).To(MatchError(boom))

	data, err := fs.GetFile("/folder.txt")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(string(data)).To(Equal("A,3"))

	fs.ClearFailures()
	g.Expect(fs.WriteFileAtomic("/folder.txt", []byte("B,1"))).To(Succeed())
}

func TestMockFileSystem_Stat(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/test.txt", []byte("test"))

	info, err := fs.Stat("/test.txt")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}

	if info.Size() != 4 {
		t.Errorf("Expected size 4, got %d", info.Size())
	}
	if info.IsDir() {
		t.Error("Expected file, got directory")
	}
	if info.Name() != "test.txt" {
		t.Errorf("Expected name test.txt, got %s", info.Name())
	}
}

func TestRealFileSystem_ExistsAndOpenDir(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	root := t.TempDir()

	g.Expect(os.MkdirAll(filepath.Join(root, "folder01"), 0o755)).To(Succeed())
	g.Expect(os.MkdirAll(filepath.Join(root, "folder02"), 0o755)).To(Succeed())
	g.Expect(os.WriteFile(filepath.Join(root, "folder01", "000001.jpg"), []byte("jpg"), 0o644)).To(Succeed())
	g.Expect(os.WriteFile(filepath.Join(root, "folder.txt"), []byte("folder01,1"), 0o644)).To(Succeed())

	fs := filesystem.NewRealFileSystem(root)

	exists, err := fs.Exists("/folder01/000001.jpg")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(exists).To(BeTrue())

	exists, err = fs.Exists("/folder02/000001.jpg")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(exists).To(BeFalse())

	cursor, err := fs.OpenDir("/")
	g.Expect(err).ShouldNot(HaveOccurred())
	defer cursor.Close()

	entries := collectEntries(cursor)
	g.Expect(entries).To(ConsistOf(
		filesystem.DirEntry{Name: "folder01", IsDir: true},
		filesystem.DirEntry{Name: "folder02", IsDir: true},
		filesystem.DirEntry{Name: "folder.txt", IsDir: false},
	))

	g.Expect(cursor.Rewind()).To(Succeed())
	g.Expect(collectEntries(cursor)).To(HaveLen(3))
	g.Expect(cursor.Err()).ShouldNot(HaveOccurred())
}

func TestRealFileSystem_OpenDirDoesNotFollowSymlinks(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	root := t.TempDir()

	g.Expect(os.MkdirAll(filepath.Join(root, "folder01"), 0o755)).To(Succeed())
	g.Expect(os.Symlink(filepath.Join(root, "folder01"), filepath.Join(root, "linked"))).To(Succeed())

	cursor, err := filesystem.NewRealFileSystem(root).OpenDir("/")
	g.Expect(err).ShouldNot(HaveOccurred())
	defer cursor.Close()

	g.Expect(collectEntries(cursor)).To(ConsistOf(
		filesystem.DirEntry{Name: "folder01", IsDir: true},
		filesystem.DirEntry{Name: "linked", IsDir: false},
	))
}

func TestRealFileSystem_OpenDirOnFileFails(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	root := t.TempDir()
	g.Expect(os.WriteFile(filepath.Join(root, "plain"), nil, 0o644)).To(Succeed())

	_, err := filesystem.NewRealFileSystem(root).OpenDir("/plain")
	g.Expect(err).To(MatchError(filesystem.ErrNotDirectory))
}

func TestRealFileSystem_WriteFileAtomic(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	root := t.TempDir()
	fs := filesystem.NewRealFileSystem(root)

	g.Expect(fs.WriteFileAtomic("/folder.txt", []byte("a,1"))).To(Succeed())
	g.Expect(fs.WriteFileAtomic("/folder.txt", []byte("b,22"))).To(Succeed())

	data, err := os.ReadFile(filepath.Join(root, "folder.txt"))
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(string(data)).To(Equal("b,22"))
}

func TestRealFileSystem_PathsStayInsideRoot(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	parent := t.TempDir()
	root := filepath.Join(parent, "volume")
	g.Expect(os.MkdirAll(root, 0o755)).To(Succeed())
	g.Expect(os.WriteFile(filepath.Join(parent, "outside.txt"), nil, 0o644)).To(Succeed())

	exists, err := filesystem.NewRealFileSystem(root).Exists("/../outside.txt")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(exists).To(BeFalse())
}
