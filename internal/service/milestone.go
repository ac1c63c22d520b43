package service

// 评分数里程碑：达到 250 条奖励 5 个邀请码，此后每满 100 条再奖励 1 个
// 评分数单调递增且每条记录只创建一次，逐次同步评估即天然保证每个阈值只触发一次
const (
	milestoneBase      = 250
	milestoneStep      = 100
	milestoneBaseGrant = 5
	milestoneStepGrant = 1
)

// InviteGrantsForCount 当前评分总数应发放的邀请码数量，非里程碑返回 0
func InviteGrantsForCount(count int64) int {
	if count == milestoneBase {
		return milestoneBaseGrant
	}
	if count > milestoneBase && (count-milestoneBase)%milestoneStep == 0 {
		return milestoneStepGrant
	}
	return 0
}

// NextMilestone 下一个里程碑的评分总数
func NextMilestone(count int64) int64 {
	if count < milestoneBase {
		return milestoneBase
	}
	return count + milestoneStep - (count-milestoneBase)%milestoneStep
}

// MilestoneEvent 单次评分触发的里程碑事件，随写入事务一并返回
// 由调用方在事务提交后消费（显式返回值，不走事件广播）
type MilestoneEvent struct {
	Count int64    `json:"count"`
	Codes []string `json:"codes"`
}
