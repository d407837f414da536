// Package workerpool 固定数量 goroutine 消费闭包任务
// 队列满或已关闭时任务在调用方 goroutine 同步执行，任务不会丢失
package workerpool

import (
	"sync"

	"go.uber.org/zap"
)

// Pool 闭包任务池
type Pool struct {
	name  string
	tasks chan func()

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// New 创建并启动 workerNum 个 Worker
func New(name string, workerNum, bufferSize int) *Pool {
	if workerNum <= 0 {
		workerNum = 1
	}
	p := &Pool{
		name:  name,
		tasks: make(chan func(), bufferSize),
	}
	p.wg.Add(workerNum)
	for i := 0; i < workerNum; i++ {
		go p.startWorker()
	}
	zap.L().Info("worker pool started",
		zap.String("pool", name), zap.Int("workers", workerNum), zap.Int("buffer", bufferSize))
	return p
}

func (p *Pool) startWorker() {
	defer p.wg.Done()
	for task := range p.tasks {
		p.run(task)
	}
}

// run 单个任务 panic 只影响自己
func (p *Pool) run(task func()) {
	defer func() {
		if rec := recover(); rec != nil {
			zap.L().Error("worker task panic", zap.String("pool", p.name), zap.Any("recover", rec))
		}
	}()
	task()
}

// Submit 提交任务
func (p *Pool) Submit(task func()) {
	if task == nil {
		return
	}
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		p.run(task)
		return
	}
	select {
	case p.tasks <- task:
		p.mu.RUnlock()
	default:
		p.mu.RUnlock()
		// 降级：同步执行
		zap.L().Warn("task channel full, executing synchronously", zap.String("pool", p.name))
		p.run(task)
	}
}

// Close 停止接收新任务，等待队列中的任务执行完毕
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()
	p.wg.Wait()
}
