package models

// 以下 Stub 函数返回表单的默认值，每次调用都是新的副本

// StubFarm 农场默认值
func StubFarm() Farm {
	return Farm{}
}

// StubReservoir 水源默认值
func StubReservoir() Reservoir {
	return Reservoir{Type: ReservoirTypeTap}
}

// StubArea 区域默认值
func StubArea() Area {
	return Area{
		SizeUnit: SizeUnitHectare,
		Type:     AreaTypeSeeding,
		Location: AreaLocationOutdoor,
	}
}

// StubCrop 作物批次默认值
func StubCrop() Crop {
	return Crop{Status: CropStatusActive}
}

// StubMaterial 物料默认值
func StubMaterial() Material {
	return Material{Type: MaterialTypeSeed}
}

// StubTask 任务默认值
func StubTask() Task {
	return Task{
		Priority: TaskPriorityNormal,
		Domain:   TaskDomainGeneral,
		Status:   TaskStatusCreated,
	}
}

// StubUser 未登录用户
func StubUser() User {
	return User{}
}
