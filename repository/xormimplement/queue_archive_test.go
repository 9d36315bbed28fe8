package xormimplement

import (
	"testing"

	"adhd_task/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"xorm.io/builder"
)

func TestBuildQueueArchiveListConditions(t *testing.T) {
	// 空条件不加 where
	assert.Nil(t, buildQueueArchiveListConditions(&model.QueueArchiveListCondition{}))

	cond := buildQueueArchiveListConditions(&model.QueueArchiveListCondition{
		Mode:      "combined",
		QueueDate: "2026-03-10",
	})
	require.NotNil(t, cond)

	sql, args, err := builder.ToSQL(cond)
	require.NoError(t, err)
	assert.Contains(t, sql, "mode=?")
	assert.Contains(t, sql, "queue_date=?")
	assert.ElementsMatch(t, []interface{}{"combined", "2026-03-10"}, args)
}

func TestBuildQueueArchiveListConditionsSingleFilter(t *testing.T) {
	cond := buildQueueArchiveListConditions(&model.QueueArchiveListCondition{Mode: "hyperactive"})
	require.NotNil(t, cond)

	sql, args, err := builder.ToSQL(cond)
	require.NoError(t, err)
	assert.Equal(t, "mode=?", sql)
	assert.Equal(t, []interface{}{"hyperactive"}, args)
}
