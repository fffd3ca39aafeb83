package game

import (
	"fmt"
	"log"

	"github.com/decker502/buyornot/pkg/utils"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// VoteRecord 本机的投票记录
// 叙事投票本身只在会话内有效；这里只持久化"是否参与过"的标记
type VoteRecord struct {
	// HasVoted 是否在叙事页面完成过 Feed 投票
	HasVoted bool `yaml:"hasVoted"`
	// FeedOptionID 最近一次 Feed 投票选择
	FeedOptionID string `yaml:"feedOptionId,omitempty"`
	// SurveyAnswer 最近一次问卷回答（"yes" / "no"）
	SurveyAnswer string `yaml:"surveyAnswer,omitempty"`
	// Registered 是否已完成事前预约
	Registered bool `yaml:"registered"`
	// Sessions 打开叙事页面的次数
	Sessions int `yaml:"sessions"`
}

// VoteRecordManager 投票记录管理器
// 负责投票记录的加载、保存和内存管理
type VoteRecordManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	record       VoteRecord
}

// 存储路径常量
const (
	voteRecordObject   = "votes"
	voteRecordProperty = "local"
)

// OpenStorage 打开 gdata 存储
// 平台不支持时返回 nil，调用方进入仅内存模式
func OpenStorage(appName string) *gdata.Manager {
	if err := utils.EnsureStorageDir(appName); err != nil {
		log.Printf("[VoteRecordManager] Warning: %v", err)
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[VoteRecordManager] Warning: gdata unavailable: %v (memory only)", err)
		return nil
	}
	return m
}

// NewVoteRecordManager 创建投票记录管理器
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存记录）
func NewVoteRecordManager(gdataManager *gdata.Manager) *VoteRecordManager {
	vm := &VoteRecordManager{gdataManager: gdataManager}
	if err := vm.Load(); err != nil {
		// 加载失败不是致命错误，使用空记录
		log.Printf("[VoteRecordManager] Warning: Failed to load record: %v (starting fresh)", err)
	}
	return vm
}

// Load 从 gdata 加载记录
// gdataManager 为 nil 或记录不存在时使用空记录
func (vm *VoteRecordManager) Load() error {
	vm.record = VoteRecord{}
	if vm.gdataManager == nil {
		return nil
	}
	if !vm.gdataManager.ObjectPropExists(voteRecordObject, voteRecordProperty) {
		return nil
	}

	data, err := vm.gdataManager.LoadObjectProp(voteRecordObject, voteRecordProperty)
	if err != nil {
		return fmt.Errorf("failed to load vote record: %w", err)
	}

	var loaded VoteRecord
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal vote record: %w", err)
	}
	vm.record = loaded
	log.Printf("[VoteRecordManager] Record loaded (hasVoted=%v, sessions=%d)", loaded.HasVoted, loaded.Sessions)
	return nil
}

// Save 保存记录到 gdata
// gdataManager 为 nil 时返回 nil（降级模式，不报错）
func (vm *VoteRecordManager) Save() error {
	if vm.gdataManager == nil {
		return nil
	}
	data, err := yaml.Marshal(&vm.record)
	if err != nil {
		return fmt.Errorf("failed to marshal vote record: %w", err)
	}
	if err := vm.gdataManager.SaveObjectProp(voteRecordObject, voteRecordProperty, data); err != nil {
		return fmt.Errorf("failed to save vote record: %w", err)
	}
	return nil
}

// Record 返回当前记录的副本
func (vm *VoteRecordManager) Record() VoteRecord {
	return vm.record
}

// BeginSession 记录一次页面打开并保存
func (vm *VoteRecordManager) BeginSession() error {
	vm.record.Sessions++
	return vm.Save()
}

// RecordVote 记录一次叙事投票并保存
//
// 参数：
//   - sceneID: "feed-vote" 或 "survey-vote"
//   - optionID: 选项ID
func (vm *VoteRecordManager) RecordVote(sceneID, optionID string) error {
	switch sceneID {
	case "feed-vote":
		vm.record.HasVoted = true
		vm.record.FeedOptionID = optionID
	case "survey-vote":
		vm.record.SurveyAnswer = optionID
	default:
		return fmt.Errorf("unknown vote scene %q", sceneID)
	}
	return vm.Save()
}

// MarkRegistered 记录事前预约完成
func (vm *VoteRecordManager) MarkRegistered() error {
	vm.record.Registered = true
	return vm.Save()
}
