package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInviteGrantsForCount(t *testing.T) {
	tests := []struct {
		count int64
		want  int
	}{
		{0, 0},
		{1, 0},
		{249, 0},
		{250, 5},
		{251, 0},
		{300, 0},
		{349, 0},
		{350, 1},
		{351, 0},
		{450, 1},
		{1050, 1},
		{1049, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, InviteGrantsForCount(tt.count), "count=%d", tt.count)
	}
}

func TestNextMilestone(t *testing.T) {
	tests := []struct {
		count int64
		want  int64
	}{
		{0, 250},
		{100, 250},
		{249, 250},
		{250, 350},
		{251, 350},
		{300, 350},
		{350, 450},
		{449, 450},
		{450, 550},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NextMilestone(tt.count), "count=%d", tt.count)
	}
}
