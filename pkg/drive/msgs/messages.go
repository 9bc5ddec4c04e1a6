// Package msgs defines the drive messages exchanged over L1.
package msgs

import (
	"github.com/golang/protobuf/proto"

	fx "github.com/robotalks/vescdrive/pkg/framework"
	"github.com/robotalks/vescdrive/pkg/l1/msgs"
)

// TankDrive sets left/right inputs in [-1, 1]. Values outside are clamped.
type TankDrive struct {
	Left  float32 `protobuf:"fixed32,1,opt,name=left,proto3" json:"left,omitempty"`
	Right float32 `protobuf:"fixed32,2,opt,name=right,proto3" json:"right,omitempty"`
}

// NewMessage implements Message.
func (m *TankDrive) NewMessage() fx.Message { return &TankDrive{} }

// TypeID implements SerializableMessage.
func (m *TankDrive) TypeID() uint32 { return TankDriveTypeID }

// Serializable implements SerializableMessage.
func (m *TankDrive) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *TankDrive) ProtoMessage() {}

// Reset implements proto.Message.
func (m *TankDrive) Reset() { *m = TankDrive{} }

// String implements proto.Message.
func (m *TankDrive) String() string { return proto.CompactTextString(m) }

// DriveStop stops all motors and clears the setpoint.
type DriveStop struct {
}

// NewMessage implements Message.
func (m *DriveStop) NewMessage() fx.Message { return &DriveStop{} }

// TypeID implements SerializableMessage.
func (m *DriveStop) TypeID() uint32 { return DriveStopTypeID }

// Serializable implements SerializableMessage.
func (m *DriveStop) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *DriveStop) ProtoMessage() {}

// Reset implements proto.Message.
func (m *DriveStop) Reset() { *m = DriveStop{} }

// String implements proto.Message.
func (m *DriveStop) String() string { return proto.CompactTextString(m) }

// MotorSet sends one raw command to one configured motor.
type MotorSet struct {
	MotorId uint32  `protobuf:"varint,1,opt,name=motor_id,json=motorId,proto3" json:"motor_id,omitempty"`
	Command string  `protobuf:"bytes,2,opt,name=command,proto3" json:"command,omitempty"`
	Value   float64 `protobuf:"fixed64,3,opt,name=value,proto3" json:"value,omitempty"`
}

// NewMessage implements Message.
func (m *MotorSet) NewMessage() fx.Message { return &MotorSet{} }

// TypeID implements SerializableMessage.
func (m *MotorSet) TypeID() uint32 { return MotorSetTypeID }

// Serializable implements SerializableMessage.
func (m *MotorSet) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *MotorSet) ProtoMessage() {}

// Reset implements proto.Message.
func (m *MotorSet) Reset() { *m = MotorSet{} }

// String implements proto.Message.
func (m *MotorSet) String() string { return proto.CompactTextString(m) }

// DriveStatusQuery queries the status.
type DriveStatusQuery struct {
}

// NewMessage implements Message.
func (m *DriveStatusQuery) NewMessage() fx.Message { return &DriveStatusQuery{} }

// TypeID implements SerializableMessage.
func (m *DriveStatusQuery) TypeID() uint32 { return DriveStatusQueryTypeID }

// Serializable implements SerializableMessage.
func (m *DriveStatusQuery) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *DriveStatusQuery) ProtoMessage() {}

// Reset implements proto.Message.
func (m *DriveStatusQuery) Reset() { *m = DriveStatusQuery{} }

// String implements proto.Message.
func (m *DriveStatusQuery) String() string { return proto.CompactTextString(m) }

// DriveStatus is the reply of DriveStatusQuery.
type DriveStatus struct {
	Active     bool           `protobuf:"varint,1,opt,name=active,proto3" json:"active,omitempty"`
	Left       float32        `protobuf:"fixed32,2,opt,name=left,proto3" json:"left,omitempty"`
	Right      float32        `protobuf:"fixed32,3,opt,name=right,proto3" json:"right,omitempty"`
	Command    string         `protobuf:"bytes,4,opt,name=command,proto3" json:"command,omitempty"`
	Ticks      uint64         `protobuf:"varint,5,opt,name=ticks,proto3" json:"ticks,omitempty"`
	FailedTick uint64         `protobuf:"varint,6,opt,name=failed_tick,json=failedTick,proto3" json:"failed_tick,omitempty"`
	Motors     []*MotorStatus `protobuf:"bytes,7,rep,name=motors,proto3" json:"motors,omitempty"`
}

// NewMessage implements Message.
func (m *DriveStatus) NewMessage() fx.Message { return &DriveStatus{} }

// TypeID implements SerializableMessage.
func (m *DriveStatus) TypeID() uint32 { return DriveStatusTypeID }

// Serializable implements SerializableMessage.
func (m *DriveStatus) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *DriveStatus) ProtoMessage() {}

// Reset implements proto.Message.
func (m *DriveStatus) Reset() { *m = DriveStatus{} }

// String implements proto.Message.
func (m *DriveStatus) String() string { return proto.CompactTextString(m) }

// MotorStatus is the last setpoint of a motor.
type MotorStatus struct {
	MotorId uint32  `protobuf:"varint,1,opt,name=motor_id,json=motorId,proto3" json:"motor_id,omitempty"`
	Side    string  `protobuf:"bytes,2,opt,name=side,proto3" json:"side,omitempty"`
	Value   float64 `protobuf:"fixed64,3,opt,name=value,proto3" json:"value,omitempty"`
	Error   string  `protobuf:"bytes,4,opt,name=error,proto3" json:"error,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *MotorStatus) ProtoMessage() {}

// Reset implements proto.Message.
func (m *MotorStatus) Reset() { *m = MotorStatus{} }

// String implements proto.Message.
func (m *MotorStatus) String() string { return proto.CompactTextString(m) }

// DriveFault is an Event sent when motors fail in a tick.
type DriveFault struct {
	Message  string   `protobuf:"bytes,1,opt,name=message,proto3" json:"message,omitempty"`
	MotorIds []uint32 `protobuf:"varint,2,rep,packed,name=motor_ids,json=motorIds,proto3" json:"motor_ids,omitempty"`
}

// NewMessage implements Message.
func (m *DriveFault) NewMessage() fx.Message { return &DriveFault{} }

// TypeID implements SerializableMessage.
func (m *DriveFault) TypeID() uint32 { return DriveFaultEventTypeID }

// Serializable implements SerializableMessage.
func (m *DriveFault) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *DriveFault) ProtoMessage() {}

// Reset implements proto.Message.
func (m *DriveFault) Reset() { *m = DriveFault{} }

// String implements proto.Message.
func (m *DriveFault) String() string { return proto.CompactTextString(m) }

// GroupDrive is the group of drive messages.
const GroupDrive = msgs.GroupDrive

// TypeIDs
const (
	TankDriveTypeID        uint32 = GroupDrive | 0x0000
	DriveStopTypeID        uint32 = GroupDrive | 0x0001
	MotorSetTypeID         uint32 = GroupDrive | 0x0002
	DriveStatusQueryTypeID uint32 = GroupDrive | 0x0003
	DriveStatusTypeID      uint32 = DriveStatusQueryTypeID | msgs.TypeIDMaskReply
	DriveFaultEventTypeID  uint32 = GroupDrive | msgs.TypeIDKindEvent | 0x0000
)

func init() {
	msgs.Register(
		(*TankDrive)(nil),
		(*DriveStop)(nil),
		(*MotorSet)(nil),
		(*DriveStatusQuery)(nil),
		(*DriveStatus)(nil),
		(*DriveFault)(nil),
	)
}
