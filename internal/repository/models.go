// Package repository provides database abstraction for persisting
// partition run records.
package repository

import (
	"time"

	"github.com/Davinais/FM-Heuristic/pkg/model"
)

// PartitionRunRecord represents the partition_run table.
type PartitionRunRecord struct {
	ID         int64            `gorm:"column:id;primaryKey;autoIncrement"`
	RunUUID    string           `gorm:"column:run_uuid;type:varchar(64);uniqueIndex"`
	InputPath  string           `gorm:"column:input_path;type:varchar(512)"`
	OutputPath string           `gorm:"column:output_path;type:varchar(512)"`
	BFactor    float64          `gorm:"column:b_factor"`
	Status     model.RunStatus  `gorm:"column:status"`
	StatusInfo string           `gorm:"column:status_info;type:text"`
	CellCount  int              `gorm:"column:cell_count"`
	NetCount   int              `gorm:"column:net_count"`
	PassCount  int              `gorm:"column:pass_count"`
	CutSize    int              `gorm:"column:cut_size"`
	PartSizeA  int              `gorm:"column:part_size_a"`
	PartSizeB  int              `gorm:"column:part_size_b"`
	CreateTime time.Time        `gorm:"column:create_time;autoCreateTime"`
	BeginTime  *time.Time       `gorm:"column:begin_time"`
	EndTime    *time.Time       `gorm:"column:end_time"`
}

// TableName returns the table name for PartitionRunRecord.
func (PartitionRunRecord) TableName() string {
	return "partition_run"
}

// ToModel converts PartitionRunRecord to model.PartitionRun.
func (r *PartitionRunRecord) ToModel() *model.PartitionRun {
	return &model.PartitionRun{
		ID:         r.ID,
		RunUUID:    r.RunUUID,
		InputPath:  r.InputPath,
		OutputPath: r.OutputPath,
		BFactor:    r.BFactor,
		Status:     r.Status,
		StatusInfo: r.StatusInfo,
		CellCount:  r.CellCount,
		NetCount:   r.NetCount,
		PassCount:  r.PassCount,
		CutSize:    r.CutSize,
		PartSizeA:  r.PartSizeA,
		PartSizeB:  r.PartSizeB,
		CreateTime: r.CreateTime,
		BeginTime:  r.BeginTime,
		EndTime:    r.EndTime,
	}
}

// FromModel populates a PartitionRunRecord's mutable fields from a
// model.PartitionRun, leaving ID/RunUUID/CreateTime untouched.
func (r *PartitionRunRecord) FromModel(run *model.PartitionRun) {
	r.InputPath = run.InputPath
	r.OutputPath = run.OutputPath
	r.BFactor = run.BFactor
	r.Status = run.Status
	r.StatusInfo = run.StatusInfo
	r.CellCount = run.CellCount
	r.NetCount = run.NetCount
	r.PassCount = run.PassCount
	r.CutSize = run.CutSize
	r.PartSizeA = run.PartSizeA
	r.PartSizeB = run.PartSizeB
	r.BeginTime = run.BeginTime
	r.EndTime = run.EndTime
}

// PassHistoryRecord represents the pass_history table.
type PassHistoryRecord struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement"`
	RunUUID     string `gorm:"column:run_uuid;type:varchar(64);index"`
	PassIndex   int    `gorm:"column:pass_index"`
	MoveNum     int    `gorm:"column:move_num"`
	BestMoveNum int    `gorm:"column:best_move_num"`
	AccGain     int    `gorm:"column:acc_gain"`
}

// TableName returns the table name for PassHistoryRecord.
func (PassHistoryRecord) TableName() string {
	return "pass_history"
}

// ToModel converts PassHistoryRecord to model.PassRecord.
func (p *PassHistoryRecord) ToModel() model.PassRecord {
	return model.PassRecord{
		RunUUID:     p.RunUUID,
		PassIndex:   p.PassIndex,
		MoveNum:     p.MoveNum,
		BestMoveNum: p.BestMoveNum,
		AccGain:     p.AccGain,
	}
}
