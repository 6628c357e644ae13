package domain

import "math"

// Plan returns the ascending indices of the last requested frames of a video
// with totalFrames frames. When requested exceeds totalFrames the plan covers
// every frame and clamped is true.
func Plan(totalFrames, requested int) (indices []int, clamped bool) {
	return PlanWithBuffer(totalFrames, requested, 0)
}

// PlanWithBuffer is Plan with the selection window moved bufferFrames frames
// back from the end of the video. The last selected index is
// max(0, totalFrames-bufferFrames-1), so a buffer at least as long as the
// video selects frame 0 only. A negative buffer counts as zero.
func PlanWithBuffer(totalFrames, requested, bufferFrames int) (indices []int, clamped bool) {
	if totalFrames <= 0 || requested <= 0 {
		return []int{}, false
	}
	if bufferFrames < 0 {
		bufferFrames = 0
	}

	last := max(0, totalFrames-bufferFrames-1)
	available := last + 1

	count := requested
	if count > available {
		count = available
		clamped = true
	}

	indices = make([]int, 0, count)
	for i := available - count; i <= last; i++ {
		indices = append(indices, i)
	}
	return indices, clamped
}

// BufferFrames converts a buffer in seconds into whole frames at fps,
// truncating toward zero like a frame counter would. Non-positive or
// non-finite inputs give 0.
func BufferFrames(fps, seconds float64) int {
	if fps <= 0 || seconds <= 0 || math.IsInf(fps, 0) || math.IsNaN(fps) || math.IsInf(seconds, 0) || math.IsNaN(seconds) {
		return 0
	}
	frames := fps * seconds
	if frames >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(frames)
}
