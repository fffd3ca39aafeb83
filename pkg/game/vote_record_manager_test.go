package game

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

func openTestStorage(t *testing.T) *gdata.Manager {
	t.Helper()
	// gdata 在 HOME 下创建数据目录
	t.Setenv("HOME", t.TempDir())
	m, err := gdata.Open(gdata.Config{AppName: "test_buyornot"})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

// TestVoteRecordManagerNilGdata 降级模式：仅内存记录，保存不报错
func TestVoteRecordManagerNilGdata(t *testing.T) {
	vm := NewVoteRecordManager(nil)
	if vm.Record() != (VoteRecord{}) {
		t.Errorf("Initial record = %+v, want zero", vm.Record())
	}
	if err := vm.RecordVote("feed-vote", "1"); err != nil {
		t.Fatalf("RecordVote() error: %v", err)
	}
	if !vm.Record().HasVoted || vm.Record().FeedOptionID != "1" {
		t.Errorf("record = %+v", vm.Record())
	}
}

// TestVoteRecordManagerPersistence 记录在重新打开后仍然存在
func TestVoteRecordManagerPersistence(t *testing.T) {
	m := openTestStorage(t)

	vm := NewVoteRecordManager(m)
	if err := vm.BeginSession(); err != nil {
		t.Fatalf("BeginSession() error: %v", err)
	}
	if err := vm.RecordVote("feed-vote", "2"); err != nil {
		t.Fatalf("RecordVote(feed) error: %v", err)
	}
	if err := vm.RecordVote("survey-vote", "yes"); err != nil {
		t.Fatalf("RecordVote(survey) error: %v", err)
	}
	if err := vm.MarkRegistered(); err != nil {
		t.Fatalf("MarkRegistered() error: %v", err)
	}

	reopened := NewVoteRecordManager(m)
	want := VoteRecord{HasVoted: true, FeedOptionID: "2", SurveyAnswer: "yes", Registered: true, Sessions: 1}
	if got := reopened.Record(); got != want {
		t.Errorf("reloaded record = %+v, want %+v", got, want)
	}
}

// TestVoteRecordManagerUnknownScene 未知场景返回错误且不修改记录
func TestVoteRecordManagerUnknownScene(t *testing.T) {
	vm := NewVoteRecordManager(nil)
	if err := vm.RecordVote("unknown", "1"); err == nil {
		t.Error("Expected error for unknown scene")
	}
	if vm.Record() != (VoteRecord{}) {
		t.Errorf("record modified: %+v", vm.Record())
	}
}

// TestVoteRecordManagerCorruptedData 损坏的数据回退为空记录
func TestVoteRecordManagerCorruptedData(t *testing.T) {
	m := openTestStorage(t)
	if err := m.SaveObjectProp(voteRecordObject, voteRecordProperty, []byte("hasVoted: [not a bool")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	vm := NewVoteRecordManager(m)
	if vm.Record() != (VoteRecord{}) {
		t.Errorf("record = %+v, want zero", vm.Record())
	}
	if err := vm.Load(); err == nil {
		t.Error("Load() should report the unmarshal error")
	}
}
